package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrymomot/taxid/internal/locales"
	"github.com/dmitrymomot/taxid/pkg/i18n"
	"github.com/dmitrymomot/taxid/pkg/taxid"
)

type validateOutput struct {
	INN     string `json:"inn"`
	KPP     string `json:"kpp,omitempty"`
	Message string `json:"message,omitempty"`
	taxid.Result
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kpp       = fs.String("kpp", "", "also validate this KPP against each INN")
		legacy    = fs.Bool("legacy", false, "check length and control digits only")
		noForeign = fs.Bool("no-foreign", false, "reject foreign organization INNs")
		lang      = fs.String("lang", "", "message language: ru or en (default from LANG, then en)")
		asJSON    = fs.Bool("json", false, "print one JSON object per INN")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "validate: at least one INN is required")
		return exitUsage
	}

	tr, err := locales.New(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "load translations: %v\n", err)
		return exitUsage
	}
	language := tr.Match(*lang, envLang())

	var opts []taxid.Option
	if *legacy {
		opts = append(opts, taxid.WithStructure(false))
	}
	if *noForeign {
		opts = append(opts, taxid.WithForeignOrgs(false))
	}

	enc := json.NewEncoder(stdout)
	code := exitOK
	for _, inn := range fs.Args() {
		out := validateOne(tr, language, inn, *kpp, opts)
		if !out.IsValid {
			code = exitInvalid
		}

		if *asJSON {
			if err := enc.Encode(out); err != nil {
				fmt.Fprintf(stderr, "encode: %v\n", err)
				return exitUsage
			}
			continue
		}

		if out.IsValid {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", inn, tr.T(language, "taxid.cli.valid"), tr.T(language, "taxid.entity."+string(out.Details.Type)))
		} else {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", inn, tr.T(language, "taxid.cli.invalid"), out.Message)
		}
	}
	return code
}

func validateOne(tr *i18n.Translator, lang, inn, kpp string, opts []taxid.Option) validateOutput {
	res, kr := taxid.ApplyKPP(taxid.ValidateINN(inn, opts...), kpp)
	out := validateOutput{INN: inn, KPP: kpp, Result: res}
	switch {
	case res.Details.KPPError:
		out.Message = tr.T(lang, kr.Reason.TranslationKey())
	case !res.IsValid:
		field := tr.T(lang, "taxid.field.inn")
		out.Message = tr.Td(lang, res.ErrorCode.UITranslationKey(), taxid.UIMessage(res.ErrorCode, field), "field", field)
	}
	return out
}
