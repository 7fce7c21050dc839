package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"socialgraph/backend/internal/network"
	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Chat Commands
// ============================================================================

const helpText = "Commands:\n" +
	"`add <name> [key=value ...]` add a person\n" +
	"`friend <a> <b>` make two people friends\n" +
	"`update <name> key=value ...` merge attributes\n" +
	"`degree <a> <b>` degree of separation\n" +
	"`show <name>` attributes and friends\n" +
	"Quote names with spaces: `add \"Mary Ann\" age=30`"

// Execute runs one command line (prefix already removed) and returns the reply text
func (h *Handler) Execute(ctx context.Context, line string) string {
	args, err := tokenize(line)
	if err != nil {
		return "Could not parse command: " + err.Error()
	}
	if len(args) == 0 {
		return helpText
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "add":
		return h.cmdAdd(ctx, args)
	case "friend":
		return h.cmdFriend(ctx, args)
	case "update":
		return h.cmdUpdate(ctx, args)
	case "degree":
		return h.cmdDegree(ctx, args)
	case "show":
		return h.cmdShow(ctx, args)
	case "help":
		return helpText
	default:
		return fmt.Sprintf("Unknown command %q.\n%s", cmd, helpText)
	}
}

func (h *Handler) cmdAdd(ctx context.Context, args []string) string {
	if len(args) < 1 {
		return "Usage: `add <name> [key=value ...]`"
	}
	attrs, err := parseAttributes(args[1:])
	if err != nil {
		return err.Error()
	}
	if err := h.graph.AddPerson(ctx, args[0], attrs); err != nil {
		return describeError(err)
	}
	return fmt.Sprintf("Added **%s**.", args[0])
}

func (h *Handler) cmdFriend(ctx context.Context, args []string) string {
	if len(args) != 2 {
		return "Usage: `friend <a> <b>`"
	}
	if err := h.graph.AddFriendship(ctx, args[0], args[1]); err != nil {
		return describeError(err)
	}
	return fmt.Sprintf("**%s** and **%s** are now friends.", args[0], args[1])
}

func (h *Handler) cmdUpdate(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return "Usage: `update <name> key=value ...`"
	}
	attrs, err := parseAttributes(args[1:])
	if err != nil {
		return err.Error()
	}
	if err := h.graph.UpdatePersonDetails(ctx, args[0], attrs); err != nil {
		return describeError(err)
	}
	return fmt.Sprintf("Updated **%s**.", args[0])
}

func (h *Handler) cmdDegree(ctx context.Context, args []string) string {
	if len(args) != 2 {
		return "Usage: `degree <a> <b>`"
	}
	res, err := h.graph.Separation(ctx, args[0], args[1])
	if err != nil {
		return describeError(err)
	}

	switch res.Outcome {
	case network.OutcomeNotFound:
		return "One or both individuals are not in the network."
	case network.OutcomeUnreachable:
		return fmt.Sprintf("**%s** and **%s** are not connected.", args[0], args[1])
	}
	if res.Distance == 1 {
		return fmt.Sprintf("**%s** and **%s** are 1 degree apart.", args[0], args[1])
	}
	return fmt.Sprintf("**%s** and **%s** are %d degrees apart.", args[0], args[1], res.Distance)
}

func (h *Handler) cmdShow(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return "Usage: `show <name>`"
	}
	p, err := h.graph.Person(ctx, args[0])
	if err != nil {
		return describeError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", p.Name)

	keys := make([]string, 0, len(p.Attributes))
	for k := range p.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, p.Attributes[k])
	}

	if len(p.Friends) == 0 {
		b.WriteString("Friends: none")
	} else {
		b.WriteString("Friends: " + strings.Join(p.Friends, ", "))
	}
	return b.String()
}

// describeError renders graph errors as chat replies
func describeError(err error) string {
	var exists *apperrors.ErrPersonAlreadyExists
	var notFound *apperrors.ErrPersonNotFound
	switch {
	case errors.As(err, &exists):
		return fmt.Sprintf("%s already exists in the network.", exists.Name)
	case errors.As(err, &notFound):
		if len(notFound.Names) == 1 {
			return fmt.Sprintf("%s is not found in the network.", notFound.Names[0])
		}
		return "One or both individuals are not in the network."
	case errors.Is(err, apperrors.ErrSelfFriendship):
		return "A person cannot be friends with themselves."
	case errors.Is(err, apperrors.ErrInvalidName):
		return "Names must not be empty."
	default:
		return "Error: " + err.Error()
	}
}

// parseAttributes reads key=value pairs; values are typed with network.ParseValue
func parseAttributes(pairs []string) (network.Attributes, error) {
	attrs := make(network.Attributes, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		attrs[strings.TrimSpace(key)] = network.ParseValue(value)
	}
	return attrs, nil
}

// tokenize splits on whitespace and honours double quotes
func tokenize(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		started bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}
