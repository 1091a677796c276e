package rpn

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Token is a single lexical element of an expression.
type Token struct {
	// Kind is the token kind.
	Kind TokenKind
	// Op is the operator for TokenOp tokens and OpNone otherwise.
	Op Operator
	// Text is the text of the token. For numbers this is the maximal run of
	// digits; it is parsed only during evaluation.
	Text string
	// Pos is the rune column of the first character of the token, starting
	// from 1.
	Pos int
}

func (t Token) String() string {
	return t.Text
}

// MarshalText encodes the token as its text.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.Text), nil
}

// UnmarshalText decodes a token from its text. The position of the result is
// always 0.
func (t *Token) UnmarshalText(text []byte) error {
	toks, err := TokenizeString(string(text))
	if err != nil {
		return err
	}
	if len(toks) != 1 {
		return &TokenError{Text: string(text)}
	}
	*t = toks[0]
	t.Pos = 0
	return nil
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a non-negative integer literal.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operator is a binary arithmetic operator.
type Operator int8

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// priorities maps operators to their binding strength. Higher binds tighter.
var priorities = [...]int{
	OpAdd: 0,
	OpSub: 0,
	OpMul: 1,
	OpDiv: 1,
}

// Priority returns the priority of the operator. ok is false if the operator
// has no priority, i.e. it is not a valid operator.
func (op Operator) Priority() (p int, ok bool) {
	if op <= OpNone || int(op) >= len(priorities) {
		return 0, false
	}
	return priorities[op], true
}

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Operators contains the runes which are considered to be operators, in the
// same order as the Operator constants starting from OpAdd.
const Operators = "+-*/"

// whitespace is the set of runes skipped between tokens.
const whitespace = " \t\n\v\f\r"

type lexer struct {
	src io.RuneScanner
	// num accumulates the digits of the number being scanned.
	num strings.Builder
	// start is the column of the first digit in num.
	start int
	// rune is the number of runes read so far.
	rune int
	toks []Token
}

// readRune reads a rune from src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// flush emits the accumulated number, if any.
func (l *lexer) flush() {
	if l.num.Len() == 0 {
		return
	}
	l.toks = append(l.toks, Token{Kind: TokenNum, Text: l.num.String(), Pos: l.start})
	l.num.Reset()
}

func (l *lexer) emit(kind TokenKind, op Operator, r rune) {
	l.flush()
	l.toks = append(l.toks, Token{Kind: kind, Op: op, Text: string(r), Pos: l.rune})
}

// Tokenize scans an expression into tokens. Whitespace is skipped without
// ending a number, so "1 2" is the single number 12; only operators,
// parentheses, and the end of the input end a number.
func Tokenize(src io.RuneScanner) ([]Token, error) {
	l := lexer{src: src}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch {
		case '0' <= r && r <= '9':
			if l.num.Len() == 0 {
				l.start = l.rune
			}
			l.num.WriteRune(r)
		case strings.ContainsRune(whitespace, r):
			continue
		case r == '(':
			l.emit(TokenOpen, OpNone, r)
		case r == ')':
			l.emit(TokenClose, OpNone, r)
		default:
			k := strings.IndexRune(Operators, r)
			if k < 0 {
				return nil, &UnexpectedSymbolError{Col: l.rune, Symbol: r}
			}
			l.emit(TokenOp, OpAdd+Operator(k), r)
		}
	}
	l.flush()
	return l.toks, nil
}

// TokenizeString is a shortcut to tokenize a string.
func TokenizeString(src string) ([]Token, error) {
	return Tokenize(strings.NewReader(src))
}

// FormatTokens formats a token sequence as the space-separated text of each
// token.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
