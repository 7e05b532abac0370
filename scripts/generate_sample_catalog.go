package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleCatalog writes sample catalog shards for local runs.
// books1.gz and books2.gz both list 978-0000000002; the second shard's
// price and stock win when both are loaded in that order.
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	shards := map[string][]string{
		"books1.gz": {
			"# isbn,price,stock",
			"978-0000000001,10,5",
			"978-0000000002,20,3",
			"978-0000000003,35,0",
			"978-0000000004,12,100",
		},
		"books2.gz": {
			"978-0000000002,22,8",
			"978-0000000005,8,1",
			"978-0000000006,45,2",
		},
	}

	for filename, lines := range shards {
		path := filepath.Join(dataDir, filename)
		if err := writeShard(path, lines); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Created %s with %d lines\n", path, len(lines))
	}

	fmt.Println("\nSample orders:")
	fmt.Println(`  {"978-0000000001": 2, "978-0000000002": 5}  -> partial stock on 978-0000000002 with books1.gz only`)
	fmt.Println(`  {"978-0000000003": 1}                       -> out of stock`)
}

func writeShard(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	for _, line := range lines {
		if _, err := gzipWriter.Write([]byte(line + "\n")); err != nil {
			return err
		}
	}
	return gzipWriter.Close()
}
