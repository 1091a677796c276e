package rpn

import (
	"strconv"
)

// value is an entry on the evaluation stack.
type value struct {
	v float64
	// pos is the position of the token which produced the value.
	pos int
}

type valstack []value

func (s *valstack) push(v value) {
	*s = append(*s, v)
}

func (s *valstack) pop() value {
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

// Evaluate computes the value of a postfix token sequence. Division by zero is
// not an error; it gives an infinity or NaN.
func Evaluate(postfix []Token) (float64, error) {
	var stack valstack
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			v, err := parseNum(tok)
			if err != nil {
				return 0, err
			}
			stack.push(value{v: v, pos: tok.Pos})
		case TokenOp:
			if len(stack) < 2 {
				return 0, &StackUnderflowError{Col: tok.Pos, Operator: tok.Text, Have: len(stack)}
			}
			r := stack.pop()
			l := stack.pop()
			switch tok.Op {
			case OpAdd:
				l.v += r.v
			case OpSub:
				l.v -= r.v
			case OpMul:
				l.v *= r.v
			case OpDiv:
				l.v /= r.v
			default:
				return 0, &UnknownOperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			stack.push(l)
		default:
			return 0, &TokenError{Col: tok.Pos, Kind: tok.Kind, Text: tok.Text}
		}
	}
	switch len(stack) {
	case 0:
		return 0, &MalformedExpressionError{Values: 0}
	case 1:
		return stack[0].v, nil
	default:
		return 0, &MalformedExpressionError{Col: stack[1].pos, Values: len(stack)}
	}
}

// parseNum parses the text of a number token. The text must be a non-empty
// run of ASCII digits.
func parseNum(tok Token) (float64, error) {
	if tok.Text == "" {
		return 0, &NumberFormatError{Col: tok.Pos, Text: tok.Text}
	}
	for _, c := range tok.Text {
		if c < '0' || c > '9' {
			return 0, &NumberFormatError{Col: tok.Pos, Text: tok.Text}
		}
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return 0, &NumberFormatError{Col: tok.Pos, Text: tok.Text, Err: err}
	}
	return v, nil
}
