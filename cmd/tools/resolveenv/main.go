// Command resolveenv rewrites #{NAME}# placeholders in a config file with
// values from the environment, for hosts that read configuration from disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"medisupply.com/portal/internal/config"
)

func main() {
	in := flag.String("in", ".env.production", "file with placeholders")
	out := flag.String("out", "", "output file (defaults to rewriting -in)")
	strict := flag.Bool("strict", true, "fail when a placeholder has no value")
	flag.Parse()

	// a local .env may provide the values
	_ = godotenv.Load()

	src, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *in, err)
		os.Exit(1)
	}

	resolved, missing := config.ResolveString(string(src), os.LookupEnv)
	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Unresolved placeholders: %s\n", strings.Join(missing, ", "))
		if *strict {
			os.Exit(1)
		}
	}

	dst := *out
	if dst == "" {
		dst = *in
	}
	if err := os.WriteFile(dst, []byte(resolved), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", dst, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", dst)
}
