// Command catalogctl reads and edits a running storefront's catalog over its
// JSON API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
)

const usage = `usage: catalogctl [--url URL] [--admin-code CODE] <command> [flags]

commands:
  list [--brand ALL|NEOFECT|UPWELLY]
  get ID
  put --name ... --category ... --brand ... --price ... --image-url ... --amazon-url ... [--id ID] [--description ...]
  delete ID
  config
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "catalogctl:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("catalogctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	baseURL := fs.String("url", getenv("TIMBEE_URL", "http://localhost:8080"), "storefront base URL")
	code := fs.String("admin-code", os.Getenv("TIMBEE_ADMIN_CODE"), "shared admin code for write commands")

	brand := fs.String("brand", "", "brand filter for list, brand for put")
	id := fs.String("id", "", "product id for put; generated when empty")
	name := fs.String("name", "", "product name")
	category := fs.String("category", "", "product category")
	description := fs.String("description", "", "product description")
	price := fs.String("price", "", "display price, e.g. $49.99")
	imageURL := fs.String("image-url", "", "product image URL")
	amazonURL := fs.String("amazon-url", "", "marketplace listing URL")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	c := NewClient(*baseURL, *code)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "list":
		products, err := c.List(ctx, *brand)
		if err != nil {
			return err
		}
		return printJSON(stdout, products)

	case "get":
		if len(rest) != 1 {
			fs.Usage()
			return errUsage
		}
		p, err := c.Get(ctx, rest[0])
		if err != nil {
			return fmt.Errorf("get %s: %w", rest[0], err)
		}
		return printJSON(stdout, p)

	case "put":
		p, err := c.Put(ctx, catalog.Product{
			ID:          *id,
			Name:        *name,
			Category:    *category,
			Brand:       catalog.Brand(*brand),
			Description: *description,
			Price:       *price,
			ImageURL:    *imageURL,
			AmazonURL:   *amazonURL,
		})
		if err != nil {
			return fmt.Errorf("put: %w", err)
		}
		return printJSON(stdout, p)

	case "delete":
		if len(rest) != 1 {
			fs.Usage()
			return errUsage
		}
		if err := c.Delete(ctx, rest[0]); err != nil {
			return fmt.Errorf("delete %s: %w", rest[0], err)
		}
		return printJSON(stdout, map[string]string{"deleted": rest[0]})

	case "config":
		cfg, err := c.Config(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, cfg)
	}

	fs.Usage()
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
