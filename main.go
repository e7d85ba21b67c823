// Command css-resolver fetches a CSS document from a file or URL,
// embeds its @import statements and url() assets, optionally minifies
// the result, and writes it to an output file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/eepyfemboi/css-resolver/filewriter"
	"github.com/eepyfemboi/css-resolver/filters"
	"github.com/eepyfemboi/css-resolver/fspoll"
	"github.com/eepyfemboi/css-resolver/logger"
	"github.com/eepyfemboi/css-resolver/resolver"
)

var (
	fLogMethod = flag.Int("log-method", 1, "logging method (0: none, 1: console, 2: file, 3: both)")
	fLogLevel  = flag.Int("log-level", 1, "logging level (0: none, 1: normal, 2: verbose)")
	fLogFile   = flag.String("log-file", logger.DefaultLogFile, "log file used by log methods 2 and 3")
	fUserAgent = flag.String("user-agent", "", "user agent for requesting stylesheets and assets")
	fMinify    = flag.Bool("minify", true, "minify the output css")
	fFilter    = flag.String("filter", "compact", `minify filter ("compact" or "cssmin")`)
	fTimeout   = flag.Duration("timeout", resolver.DefaultTimeout, "request timeout")
	fMaxDepth  = flag.Int("max-depth", resolver.DefaultMaxDepth, "maximum @import nesting depth")
	fConfig    = flag.String("config", "", "path to a yaml config file")
	fWatch     = flag.Bool("watch", false, "rebuild when a local source file changes")
)

// settings are the effective options after merging config file values
// with explicitly set flags.
type settings struct {
	userAgent string
	timeout   time.Duration
	maxDepth  int
	filter    string
	logFile   string
}

// mergeSettings applies config file values for every option whose flag
// was not given on the command line (set holds the given flag names).
func mergeSettings(cfg *Config, set map[string]bool) (s settings, err error) {
	s = settings{
		userAgent: *fUserAgent,
		timeout:   *fTimeout,
		maxDepth:  *fMaxDepth,
		filter:    *fFilter,
		logFile:   *fLogFile,
	}
	if !set["user-agent"] && cfg.UserAgent != "" {
		s.userAgent = cfg.UserAgent
	}
	if !set["timeout"] {
		d, err := cfg.timeout()
		if err != nil {
			return s, err
		}
		if d != 0 {
			s.timeout = d
		}
	}
	if !set["max-depth"] && cfg.MaxDepth > 0 {
		s.maxDepth = cfg.MaxDepth
	}
	if !set["filter"] && cfg.Filter != "" {
		s.filter = cfg.Filter
	}
	if !set["log-file"] && cfg.LogFile != "" {
		s.logFile = cfg.LogFile
	}
	return s, nil
}

var Usage = func() {
	fmt.Printf(`usage: css-resolver [options] filepath output-path

Fetches the css document at filepath (a local path or an http(s) url),
embeds its imports and assets, and writes the result to output-path.

Options:
`)
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = Usage
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	source, output := flag.Arg(0), flag.Arg(1)

	cfg, err := readConfig(*fConfig)
	if err != nil {
		log.Fatalf("! cannot read config: %s", err)
	}

	// Flags given on the command line win over config file values.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	s, err := mergeSettings(cfg, set)
	if err != nil {
		log.Fatalf("! %s", err)
	}

	lg, err := logger.New(logger.Method(*fLogMethod), logger.Level(*fLogLevel), s.logFile)
	if err != nil {
		log.Fatalf("! cannot set up logging: %s", err)
	}
	defer lg.Close()

	var minify filters.Filter
	if *fMinify {
		minify, err = filters.Make(s.filter)
		if err != nil {
			log.Fatalf("! %s", err)
		}
	}

	fw, err := filewriter.New(cfg.Compress)
	if err != nil {
		log.Fatalf("! %s", err)
	}

	r := resolver.New(resolver.Options{
		UserAgent: s.userAgent,
		Headers:   cfg.Headers,
		Timeout:   s.timeout,
		MaxDepth:  s.maxDepth,
	}, lg)

	build := func() error {
		css, err := r.Extract(source, minify)
		if err != nil {
			return err
		}
		if err := fw.WriteFile(output, []byte(css)); err != nil {
			return err
		}
		abs, err := filepath.Abs(output)
		if err != nil {
			abs = output
		}
		lg.Taggedf("finished", "Output saved to %s", abs)
		return nil
	}

	if err := build(); err != nil {
		log.Fatalf("! %s", err)
	}

	if *fWatch {
		if resolver.IsURL(source) {
			log.Fatalf("! cannot watch a url source: %s", source)
		}
		w, err := fspoll.Watch(source, time.Second)
		if err != nil {
			log.Fatalf("! cannot start watcher: %s", err)
		}
		defer w.Close()
		log.Printf("Watching %s for changes. Press Ctrl+C to quit.", source)
		for {
			select {
			case <-w.Change:
				if err := build(); err != nil {
					log.Printf("! build error: %s", err)
				}
			case err := <-w.Error:
				log.Printf("! watcher error: %s", err)
			}
		}
	}
}
