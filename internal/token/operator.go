package token

// Op identifies an arithmetic operator. The set is closed.
type Op int

const (
	NoOp Op = iota
	Add
	Sub
	Mul
	Div
	Neg
)

type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

func (a Assoc) String() string {
	if a == RightAssoc {
		return "right"
	}
	return "left"
}

// OpInfo describes how an operator binds.
type OpInfo struct {
	Symbol     string
	Precedence int
	Assoc      Assoc
	Arity      int
}

var opTable = [...]OpInfo{
	NoOp: {Symbol: "?"},
	Add:  {Symbol: "+", Precedence: 2, Assoc: LeftAssoc, Arity: 2},
	Sub:  {Symbol: "-", Precedence: 2, Assoc: LeftAssoc, Arity: 2},
	Mul:  {Symbol: "*", Precedence: 3, Assoc: LeftAssoc, Arity: 2},
	Div:  {Symbol: "/", Precedence: 3, Assoc: LeftAssoc, Arity: 2},
	Neg:  {Symbol: "~", Precedence: 4, Assoc: RightAssoc, Arity: 1},
}

// Info returns the precedence table entry for op. Unknown values map to NoOp.
func (o Op) Info() OpInfo {
	if o < 0 || int(o) >= len(opTable) {
		return opTable[NoOp]
	}
	return opTable[o]
}

func (o Op) String() string { return o.Info().Symbol }
func (o Op) Precedence() int { return o.Info().Precedence }
func (o Op) Associativity() Assoc { return o.Info().Assoc }
func (o Op) Arity() int { return o.Info().Arity }

// Ops lists every operator in the table.
func Ops() []Op {
	return []Op{Add, Sub, Mul, Div, Neg}
}
