package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/versebattle/cypher/pkg/cypher/phonetics"
)

// CMU pronouncing dictionary, plain-text release
const dictURL = "https://raw.githubusercontent.com/cmusphinx/cmudict/master/cmudict.dict"

func main() {
	output := "cmudict.dict"
	if len(os.Args) > 1 {
		output = os.Args[1]
	}

	log.Printf("Downloading CMU pronouncing dictionary to %s\n", output)

	resp, err := http.Get(dictURL)
	if err != nil {
		log.Fatal("Failed to fetch:", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		log.Fatalf("HTTP error: %d", resp.StatusCode)
	}

	f, err := os.Create(output)
	if err != nil {
		log.Fatal("Failed to create file:", err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		log.Fatal("Failed to write:", err)
	}
	log.Printf("Wrote %d bytes\n", n)

	// Sanity check: the file must parse.
	dict, err := phonetics.LoadFile(output)
	if err != nil {
		log.Fatalf("Downloaded file does not parse: %v", err)
	}
	fmt.Printf("Dictionary ready: %d words\n", dict.Size())
}
