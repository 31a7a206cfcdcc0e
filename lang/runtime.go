package lang

import "github.com/meppu/eight/proto"

// Dispatcher is the subset of *server.Server the runtime needs. Declaring
// it locally (rather than importing the server package) keeps lang
// usable against any request executor, and avoids a lang<->server
// import cycle.
type Dispatcher interface {
	Call(request proto.Request) (proto.Response, error)
	Cast(request proto.Request) (<-chan proto.Response, error)
}

// Run lexes and parses source against env, then drives each resulting
// statement through dispatcher: Await statements block for their
// response and contribute it to the returned slice (in statement order);
// Spawn statements ("name?") fire-and-forget and contribute nothing. On
// any parse or call error, Run aborts immediately and returns only the
// error — responses gathered so far are discarded; a caller gets either
// the full sequence or the first error, never a partial one. Statements
// whose storage effect already executed (via a prior Spawn, or a prior
// successful Await) are not undone.
func Run(dispatcher Dispatcher, source string, env map[string]string) ([]proto.Response, error) {
	statements := lex(source)
	p := newParser(env)

	var results []proto.Response

	for _, tokens := range statements {
		call, err := p.parse(tokens)
		if err != nil {
			return nil, err
		}

		if call.spawn {
			if _, err := dispatcher.Cast(call.request); err != nil {
				return nil, err
			}
			continue
		}

		resp, err := dispatcher.Call(call.request)
		if err != nil {
			return nil, err
		}
		results = append(results, resp)
	}

	return results, nil
}
