package schema

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrShape marks arguments that do not have the shape a factory expects.
	ErrShape = errors.New("schema: shape violation")
	// ErrAmbiguous marks calls whose arguments fit a different factory better.
	ErrAmbiguous = errors.New("schema: ambiguous call shape")
)

// Call shapes quoted by factory errors.
const (
	StrCall    = "Str(opts?)"
	IntCall    = "Int(opts?)"
	FloatCall  = "Float(opts?)"
	ReqCall    = "Req(schema)"
	OptCall    = "Opt(schema)"
	RecordCall = "Record(members)"
	DictCall   = "Dict(opts?, schema)"
	ListCall   = "List(opts?, itemsSchema)"
	TupleCall  = "Tuple(member0, member1, ...)"
	EnumCall   = "Enum(...items)"
	AllOfCall  = "AllOf(schema0, schema1, ...)"
	AnyOfCall  = "AnyOf(schema0, schema1, ...)"
	OneOfCall  = "OneOf(schema0, schema1, ...)"
	NotCall    = "Not(schema)"
)

const tagAdvice = "Use `Req` or `Opt` helpers"

func shapeError(call, format string, args ...any) error {
	err := errors.Newf(call+": "+format, args...)
	return errors.Mark(err, ErrShape)
}

func ambiguousError(call, format string, args ...any) error {
	err := errors.Newf(call+": "+format, args...)
	return errors.Mark(err, ErrAmbiguous)
}
