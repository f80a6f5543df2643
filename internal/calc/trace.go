package calc

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
)

// WriteTrace prints the token list, the RPN sequence and, when err is nil,
// the value of a run.
func WriteTrace(w io.Writer, r *Result, err error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Expression:\t%s\n\n", r.Expression)

	fmt.Fprintln(tw, "Tokens:")
	for _, tok := range r.Tokens {
		fmt.Fprintf(tw, "  %s\t%s\t@%d\n", kindLabel(tok), tok.Value, tok.Pos)
	}

	if r.Postfix != nil {
		fmt.Fprintf(tw, "\nRPN:\t%s\n", token.Format(r.Postfix))
	}

	if err != nil {
		fmt.Fprintf(tw, "\nError:\t%v\n", err)
	} else {
		fmt.Fprintf(tw, "\nResult:\t%d\n", r.Value)
	}

	tw.Flush()
}

func kindLabel(tok token.Token) string {
	switch tok.Type {
	case token.NUMBER:
		return "number"
	case token.OPERATOR:
		if tok.Op == token.Neg {
			return "operator (unary)"
		}
		return "operator"
	case token.LPAREN, token.RPAREN:
		return "paren"
	default:
		return tok.Type.String()
	}
}
