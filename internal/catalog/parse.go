package catalog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"checkout-core/internal/model"
)

// cancelCheckInterval is how many lines are read between context checks.
const cancelCheckInterval = 100_000

// parseShard reads `isbn,price,stock` lines. Blank lines and lines starting with '#' are skipped.
func parseShard(ctx context.Context, r io.Reader) ([]model.Book, error) {
	var books []model.Book

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		if lineNo%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		book, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		books = append(books, book)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

func parseLine(line string) (model.Book, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return model.Book{}, fmt.Errorf("expected isbn,price,stock but got %d fields", len(fields))
	}

	isbn := strings.TrimSpace(fields[0])
	if isbn == "" {
		return model.Book{}, fmt.Errorf("empty isbn")
	}

	price, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || price < 0 {
		return model.Book{}, fmt.Errorf("invalid price %q for %s: %w", fields[1], isbn, model.ErrInvalidPrice)
	}

	stock, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || stock < 0 {
		return model.Book{}, fmt.Errorf("invalid stock %q for %s: %w", fields[2], isbn, model.ErrInvalidQuantity)
	}

	return model.Book{ISBN: isbn, Price: price, Quantity: stock}, nil
}
