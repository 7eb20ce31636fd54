package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/danmuck/shippoctl/internal/config"
	"github.com/danmuck/shippoctl/internal/logging"
	"github.com/danmuck/shippoctl/internal/shippo"
	"github.com/danmuck/shippoctl/internal/transport"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const usage = `usage: shippoctl [-config path] [-output json|yaml] [-profile name] <command>

commands:
  address|parcel|shipment create -param key=value [-param ...]
  address|parcel|shipment retrieve <object_id>
  address|parcel|shipment validate <object_id>
  address|parcel|shipment list [-page n] [-results n]
  track <carrier> <tracking_number>
`

var ErrUsage = errors.New("invalid usage")

func main() {
	logging.ConfigureRuntime()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Getenv); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "shippoctl: %s\n", describeError(err))
		os.Exit(1)
	}
}

// describeError notes when an API failure may go away on retry.
func describeError(err error) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) && apiErr.Temporary() {
		return err.Error() + " (temporary, retry later)"
	}
	return err.Error()
}

func run(ctx context.Context, args []string, out io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("shippoctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "client config path (TOML); defaults to "+config.DefaultClientPath)
	output := fs.String("output", "", "output format: json|yaml")
	profile := fs.String("profile", "", "credentials profile")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := loadClientConfig(*configPath)
	if err != nil {
		return err
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *profile != "" {
		cfg.Profile = *profile
	}
	if cfg.Output != "json" && cfg.Output != "yaml" {
		return fmt.Errorf("%w: unknown output %q", ErrUsage, cfg.Output)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cfg, err = resolveToken(cfg, getenv)
	if err != nil {
		return err
	}
	tcfg, err := cfg.Transport(cfg.Token)
	if err != nil {
		return err
	}
	tc, err := transport.NewClient(tcfg)
	if err != nil {
		return err
	}
	client := shippo.NewClient(tc)
	log.Debug().
		Str("base_url", tc.BaseURL()).
		Str("command", strings.Join(rest, " ")).
		Msg("shippoctl_command")

	result, err := dispatch(ctx, client, rest)
	if err != nil {
		return err
	}
	return render(out, cfg.Output, result)
}

func dispatch(ctx context.Context, client *shippo.Client, args []string) (map[string]any, error) {
	switch args[0] {
	case "address":
		return resourceCommand(ctx, client.Addresses(), args[1:])
	case "parcel":
		return resourceCommand(ctx, client.Parcels(), args[1:])
	case "shipment":
		return resourceCommand(ctx, client.Shipments(), args[1:])
	case "track":
		if len(args) != 3 {
			return nil, fmt.Errorf("%w: track needs <carrier> <tracking_number>", ErrUsage)
		}
		track, err := client.Tracks().Get(ctx, args[1], args[2])
		if err != nil {
			return nil, err
		}
		return track.ToArray(), nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

// arrayer is satisfied by every response entity.
type arrayer interface {
	ToArray() map[string]any
}

func resourceCommand[T arrayer](ctx context.Context, res *shippo.Resource[T], args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s needs a verb", ErrUsage, res.Name())
	}
	verb, args := args[0], args[1:]
	switch verb {
	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		params := paramFlag{}
		fs.Var(params, "param", "key=value; repeatable; JSON objects and arrays are decoded")
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		obj, err := res.Create(ctx, params)
		if err != nil {
			return nil, err
		}
		return obj.ToArray(), nil
	case "retrieve", "validate":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s %s needs <object_id>", ErrUsage, res.Name(), verb)
		}
		var obj T
		var err error
		if verb == "retrieve" {
			obj, err = res.Retrieve(ctx, args[0])
		} else {
			obj, err = res.Validate(ctx, args[0])
		}
		if err != nil {
			return nil, err
		}
		return obj.ToArray(), nil
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		page := fs.Int("page", 0, "page number")
		results := fs.Int("results", 0, "results per page")
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		list, err := res.GetList(ctx, shippo.ListOptions{Page: *page, Results: *results})
		if err != nil {
			return nil, err
		}
		items := list.Results()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, item.ToArray())
		}
		return map[string]any{
			"count":    list.Count(),
			"next":     list.Next(),
			"previous": list.Previous(),
			"results":  out,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown verb %q for %s", ErrUsage, verb, res.Name())
	}
}

// paramFlag collects repeated -param key=value flags.
type paramFlag map[string]any

func (p paramFlag) String() string {
	return fmt.Sprint(map[string]any(p))
}

func (p paramFlag) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("param %q is not key=value", raw)
	}
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
			return fmt.Errorf("param %s: %w", key, err)
		}
		p[key] = decoded
		return nil
	}
	p[key] = value
	return nil
}

func render(w io.Writer, format string, v map[string]any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain(v)); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// plain replaces json.Number with int64 or float64 so YAML prints numbers
// unquoted.
func plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = plain(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = plain(inner)
		}
		return out
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
