package lang

import (
	"strconv"
	"strings"

	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/proto"
)

// callType wraps a parsed request with its await-vs-spawn modifier.
type callType struct {
	request proto.Request
	spawn   bool
}

type parser struct {
	env map[string]string
}

func newParser(env map[string]string) *parser {
	return &parser{env: env}
}

// parse turns one statement's tokens into a callType. Command words are
// matched case-sensitively in lowercase only — "SET" or "SeT" is an
// unrecognized command, not an alternate spelling.
func (p *parser) parse(tokens []token) (callType, error) {
	if len(tokens) == 0 {
		return callType{}, errs.New(errs.CommandNotFound)
	}

	command := tokens[0]
	name := command.value
	spawn := false

	if strings.HasSuffix(name, "?") {
		name = name[:len(name)-1]
		spawn = true
	}

	var (
		request proto.Request
		err     error
	)

	switch name {
	case "set":
		request, err = p.parseSet(tokens)
	case "get":
		request, err = p.parseGet(tokens)
	case "delete":
		request, err = p.parseDelete(tokens)
	case "exists":
		request, err = p.parseExists(tokens)
	case "incr":
		request, err = p.parseIncrement(tokens)
	case "decr":
		request, err = p.parseDecrement(tokens)
	case "search":
		request, err = p.parseSearch(tokens)
	case "flush":
		request, err = p.parseFlush(tokens)
	case "downgrade":
		request, err = p.parseDowngrade(tokens)
	default:
		err = errs.NewCommandError("Command not found", command.line, command.column)
	}

	if err != nil {
		return callType{}, err
	}
	return callType{request: request, spawn: spawn}, nil
}

// fetchEnv resolves a $-prefixed argument token against the environment.
// On miss, the original token (including its leading $) is returned
// unchanged.
func (p *parser) fetchEnv(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}
	if mapped, ok := p.env[value[1:]]; ok {
		return mapped
	}
	return value
}

func (p *parser) parseSet(tokens []token) (proto.Request, error) {
	if len(tokens) != 3 {
		return nil, errs.NewCommandError("Set command requires two (2) argument", tokens[0].line, tokens[0].column)
	}
	return proto.Set{
		Key:   p.fetchEnv(tokens[1].value),
		Value: p.fetchEnv(tokens[2].value),
	}, nil
}

func (p *parser) parseGet(tokens []token) (proto.Request, error) {
	if len(tokens) != 2 {
		return nil, errs.NewCommandError("Get command requires one (1) argument", tokens[0].line, tokens[0].column)
	}
	return proto.Get{Key: p.fetchEnv(tokens[1].value)}, nil
}

func (p *parser) parseDelete(tokens []token) (proto.Request, error) {
	if len(tokens) != 2 {
		return nil, errs.NewCommandError("Delete command requires one (1) argument", tokens[0].line, tokens[0].column)
	}
	return proto.Delete{Key: p.fetchEnv(tokens[1].value)}, nil
}

func (p *parser) parseExists(tokens []token) (proto.Request, error) {
	if len(tokens) != 2 {
		return nil, errs.NewCommandError("Exists command requires one (1) argument", tokens[0].line, tokens[0].column)
	}
	return proto.Exists{Key: p.fetchEnv(tokens[1].value)}, nil
}

func (p *parser) parseIncrement(tokens []token) (proto.Request, error) {
	if len(tokens) != 3 {
		return nil, errs.NewCommandError("Increment command requires two (2) argument", tokens[0].line, tokens[0].column)
	}
	key := p.fetchEnv(tokens[1].value)
	raw := p.fetchEnv(tokens[2].value)

	n, convErr := strconv.ParseUint(raw, 10, 64)
	if convErr != nil {
		return nil, errs.NewCommandError(
			"Second argument for increment command must be a valid unsigned integer",
			tokens[2].line, tokens[2].column,
		)
	}
	return proto.Increment{Key: key, N: n}, nil
}

func (p *parser) parseDecrement(tokens []token) (proto.Request, error) {
	if len(tokens) != 3 {
		return nil, errs.NewCommandError("Decrement command requires two (2) argument", tokens[0].line, tokens[0].column)
	}
	key := p.fetchEnv(tokens[1].value)
	raw := p.fetchEnv(tokens[2].value)

	n, convErr := strconv.ParseUint(raw, 10, 64)
	if convErr != nil {
		return nil, errs.NewCommandError(
			"Second argument for decrement command must be a valid unsigned integer",
			tokens[2].line, tokens[2].column,
		)
	}
	return proto.Decrement{Key: key, N: n}, nil
}

func (p *parser) parseSearch(tokens []token) (proto.Request, error) {
	if len(tokens) != 2 {
		return nil, errs.NewCommandError("Search command requires one (1) argument", tokens[0].line, tokens[0].column)
	}
	return proto.Search{Prefix: p.fetchEnv(tokens[1].value)}, nil
}

func (p *parser) parseFlush(tokens []token) (proto.Request, error) {
	if len(tokens) != 1 {
		return nil, errs.NewCommandError("Flush command can't take any value", tokens[0].line, tokens[0].column)
	}
	return proto.Flush{}, nil
}

func (p *parser) parseDowngrade(tokens []token) (proto.Request, error) {
	if len(tokens) != 1 {
		return nil, errs.NewCommandError("Downgrade permission command can't take any value", tokens[0].line, tokens[0].column)
	}
	return proto.DowngradePermission{}, nil
}
