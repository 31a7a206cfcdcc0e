// Package proto defines the request and response taxonomy exchanged
// between callers, the dispatcher, and the query runtime.
//
// Go has no tagged-union syntax, so each variant is a concrete, comparable
// struct implementing a small marker interface, switched over by the
// executor — the same shape idiomatic Go already uses for closed sum
// types (go/ast.Node, go/types.Type).
package proto

// RequestKind identifies which concrete Request variant a value holds.
type RequestKind uint8

const (
	KindSet RequestKind = iota
	KindGet
	KindDelete
	KindExists
	KindIncrement
	KindDecrement
	KindSearch
	KindFlush
	KindDowngradePermission
)

// Request is satisfied by every request variant. Kind lets permission
// checks and executors switch on the concrete type without a type switch
// over every call site.
type Request interface {
	Kind() RequestKind
}

type (
	// Set stores Value under Key, replacing any prior value.
	Set struct {
		Key   string
		Value string
	}

	// Get retrieves the value stored at Key.
	Get struct{ Key string }

	// Delete removes Key from storage.
	Delete struct{ Key string }

	// Exists reports whether Key is present.
	Exists struct{ Key string }

	// Increment parses the value at Key as a non-negative integer, adds N,
	// stores the decimal result, and returns it.
	Increment struct {
		Key string
		N   uint64
	}

	// Decrement is the subtractive counterpart of Increment.
	Decrement struct {
		Key string
		N   uint64
	}

	// Search lists every stored key beginning with Prefix.
	Search struct{ Prefix string }

	// Flush removes every stored key.
	Flush struct{}

	// DowngradePermission moves the server's permission tier down one
	// step (Owner->Admin->Guest->Guest).
	DowngradePermission struct{}
)

func (Set) Kind() RequestKind                 { return KindSet }
func (Get) Kind() RequestKind                 { return KindGet }
func (Delete) Kind() RequestKind              { return KindDelete }
func (Exists) Kind() RequestKind              { return KindExists }
func (Increment) Kind() RequestKind           { return KindIncrement }
func (Decrement) Kind() RequestKind           { return KindDecrement }
func (Search) Kind() RequestKind              { return KindSearch }
func (Flush) Kind() RequestKind               { return KindFlush }
func (DowngradePermission) Kind() RequestKind { return KindDowngradePermission }
