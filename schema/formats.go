package schema

// heap copies v into a fresh heap allocation. Fixed schemas are registered through
// weak pointers, which need heap objects; a package-level composite literal may be
// laid out statically.
//
//go:noinline
func heap[T any](v T) *T {
	return &v
}

func format(name string) *FormatSchema {
	return heap(FormatSchema{header: header{KindFormat}, Format: name})
}

// Fixed schemas. They are shared values and must not be modified.
var (
	Any  = heap(AnySchema{header{KindAny}})
	Null = heap(NullSchema{header{KindNull}})
	Bool = heap(BooleanSchema{header{KindBoolean}})

	Date         = format("date")
	Time         = format("time")
	DateTime     = format("date-time")
	URI          = format("uri")
	URIReference = format("uri-reference")
	URITemplate  = format("uri-template")
	URL          = format("url")
	Email        = format("email")
	Hostname     = format("hostname")
	IPv4         = format("ipv4")
	IPv6         = format("ipv6")
	Regex        = format("regex")
	UUID         = format("uuid")
)

// Constants lists every fixed schema, in declaration order.
func Constants() []Schema {
	return []Schema{
		Null, Bool, Date, Time, DateTime, URI, URIReference, URITemplate,
		URL, Email, Hostname, IPv4, IPv6, Regex, UUID, Any,
	}
}
