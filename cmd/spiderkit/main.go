// Package main provides the spiderkit CLI.
//
// It assembles the library's web runners into a runnable crawler:
//
//	spiderkit crawl https://example.com
//	spiderkit crawl --config site.yaml
//
// See --help for all available options.
package main

// main is the entry point for the spiderkit CLI.
func main() {
	Execute()
}
