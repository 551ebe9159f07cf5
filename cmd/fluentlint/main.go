// Command fluentlint statically verifies that every localization call-site
// in a Go project matches a message defined in the project's
// fallback-language fluent resources, with exactly the right argument set.
//
// It reads the project's i18n.toml, builds a signature index from the
// fallback-language .ftl files, scans the Go source tree for localization
// calls, and reports one diagnostic per mismatched call-site. The process
// exits with status 1 when any diagnostic was produced, making it suitable
// as a build gate.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abiiranathan/fluentlint/catalog"
	"github.com/abiiranathan/fluentlint/config"
	"github.com/abiiranathan/fluentlint/scanner"
	"github.com/abiiranathan/fluentlint/validator"
)

// Output is the JSON structure emitted with -json.
type Output struct {
	// Diagnostics contains all call-site mismatches found.
	Diagnostics []validator.Diagnostic `json:"diagnostics"`
	// Errors contains non-fatal scanner errors (optional).
	Errors []string `json:"errors,omitempty"`
}

func main() {
	dir := flag.String("dir", ".", "Go source directory to check")
	configPath := flag.String("config", "", "Path to i18n.toml (default <dir>/i18n.toml)")
	domain := flag.String("domain", "", "Resource domain (default from i18n.toml, then the directory name)")
	assetsDir := flag.String("assets", "", "Fluent asset directory (overrides i18n.toml)")
	fallback := flag.String("fallback", "", "Fallback language tag (overrides i18n.toml)")
	maxSuggestions := flag.Int("max-suggestions", validator.DefaultMaxSuggestions, "Maximum number of did-you-mean suggestions per diagnostic")
	jsonOut := flag.Bool("json", false, "Emit diagnostics as JSON")
	listMessages := flag.Bool("messages", false, "List the indexed message and attribute ids and exit")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()
	sugar := logger.Sugar()

	absDir, err := filepath.Abs(*dir)
	if err != nil {
		sugar.Errorf("could not resolve directory %s: %v", *dir, err)
		os.Exit(2)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(absDir, config.FileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Both index inputs given on the command line make the config
		// file optional.
		if *assetsDir == "" || *fallback == "" {
			sugar.Errorf("%v", err)
			os.Exit(2)
		}
		sugar.Debugf("no usable config at %s, using flags", cfgPath)
		cfg = nil
	}

	assets, lang := resolveIndexInputs(*assetsDir, *fallback, cfg, absDir)
	sugar.Debugf("fallback language: %s, assets: %s", lang, assets)

	dom := resolveDomain(*domain, cfg, absDir)
	index := catalog.NewIndex(assets, lang)

	if *listMessages {
		if err := printMessages(index, dom, *jsonOut); err != nil {
			sugar.Errorf("%v", err)
			os.Exit(2)
		}
		return
	}

	scanResult := scanner.ScanDir(absDir, dom, scanner.DefaultConfig)
	for _, e := range scanResult.Errors {
		sugar.Warnf("scan: %s", e)
	}
	sugar.Debugf("found %d call-sites in %s", len(scanResult.Requests), absDir)

	session := validator.NewSession(index)
	session.MaxSuggestions = *maxSuggestions
	diagnostics := session.CheckAll(scanResult.Requests)

	if *jsonOut {
		encodeJSON(Output{Diagnostics: diagnostics, Errors: scanResult.Errors})
	} else {
		for i := range diagnostics {
			fmt.Println(diagnostics[i].String())
		}
	}

	if len(diagnostics) > 0 {
		os.Exit(1)
	}
}

// resolveIndexInputs applies the flag-over-config precedence for the asset
// directory and fallback language. Flag-supplied asset paths are resolved
// against the scanned directory.
func resolveIndexInputs(flagAssets, flagFallback string, cfg *config.Config, absDir string) (assets, lang string) {
	if flagAssets != "" {
		assets = flagAssets
		if !filepath.IsAbs(assets) {
			assets = filepath.Join(absDir, assets)
		}
	} else {
		assets = cfg.AssetsPath()
	}

	if flagFallback != "" {
		lang = flagFallback
	} else {
		lang = cfg.FallbackLanguage
	}
	return assets, lang
}

// resolveDomain applies the domain precedence: flag, config, directory name.
func resolveDomain(flagDomain string, cfg *config.Config, absDir string) string {
	if flagDomain != "" {
		return flagDomain
	}
	if cfg != nil && cfg.Fluent.Domain != "" {
		return cfg.Fluent.Domain
	}
	return filepath.Base(absDir)
}

// printMessages lists every indexed message id (and attribute ids in the
// msg.attr form) in definition order.
func printMessages(index *catalog.Index, domain string, jsonOut bool) error {
	table, err := index.Table(domain)
	if err != nil {
		return err
	}

	var ids []string
	for _, id := range table.MessageIDs() {
		entry, _ := table.Message(id)
		if entry.HasValue {
			ids = append(ids, id)
		}
		for _, attr := range entry.AttributeIDs() {
			ids = append(ids, id+"."+attr)
		}
	}

	if jsonOut {
		encodeJSON(ids)
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// encodeJSON serializes output as JSON and writes it to stdout.
func encodeJSON(output any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(output); err != nil {
		panic("failed to encode JSON: " + err.Error())
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	return logger
}
