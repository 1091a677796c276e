package rpn

// opstack holds operators and open parentheses whose emission is deferred
// during conversion to postfix.
type opstack []Token

func (s *opstack) push(tok Token) {
	*s = append(*s, tok)
}

// pop removes and returns the top of the stack. Panics if the stack is empty.
func (s *opstack) pop() Token {
	tok := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return tok
}

// top returns the top of the stack. Panics if the stack is empty.
func (s opstack) top() Token {
	return s[len(s)-1]
}

// ToPostfix converts an infix token sequence to postfix order. The result
// contains only numbers and operators.
//
// Operators of equal priority are left-associative: an operator on the stack
// is emitted before pushing a new one when its priority is at least the new
// one's, so 10-2-3 becomes 10 2 - 3 -.
func ToPostfix(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var stack opstack
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
		case TokenOpen:
			stack.push(tok)
		case TokenClose:
			for {
				if len(stack) == 0 {
					return nil, &UnmatchedParenthesisError{Col: tok.Pos, Paren: ")"}
				}
				op := stack.pop()
				if op.Kind == TokenOpen {
					break
				}
				out = append(out, op)
			}
		case TokenOp:
			p, ok := tok.Op.Priority()
			if !ok {
				return nil, &UnknownOperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			for len(stack) > 0 && stack.top().Kind == TokenOp {
				// Operators on the stack have already been checked.
				q, _ := stack.top().Op.Priority()
				if q < p {
					break
				}
				out = append(out, stack.pop())
			}
			stack.push(tok)
		default:
			return nil, &TokenError{Col: tok.Pos, Kind: tok.Kind, Text: tok.Text}
		}
	}
	for len(stack) > 0 {
		op := stack.pop()
		if op.Kind == TokenOpen {
			return nil, &UnmatchedParenthesisError{Col: op.Pos, Paren: "("}
		}
		out = append(out, op)
	}
	return out, nil
}
