package rpn

import (
	"strconv"
)

// UnexpectedSymbolError is an error indicating a character that cannot begin
// any token. It implements InputError.
type UnexpectedSymbolError struct {
	// Col is the position of the symbol.
	Col int
	// Symbol is the offending character.
	Symbol rune
}

func (err *UnexpectedSymbolError) Error() string {
	return errpos(err.Col, "unexpected symbol "+strconv.QuoteRune(err.Symbol))
}

func (err *UnexpectedSymbolError) Pos() int {
	return err.Col
}

// UnmatchedParenthesisError is an error indicating a close parenthesis with no
// open parenthesis before it, or an open parenthesis which is never closed. It
// implements InputError.
type UnmatchedParenthesisError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Paren is the unmatched parenthesis, either "(" or ")".
	Paren string
}

func (err *UnmatchedParenthesisError) Error() string {
	if err.Paren == "(" {
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Col, "close parenthesis with no open parenthesis")
}

func (err *UnmatchedParenthesisError) Pos() int {
	return err.Col
}

// UnknownOperatorError is an error indicating an operator token whose operator
// has no priority. It implements InputError.
type UnknownOperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the text of the operator token.
	Operator string
}

func (err *UnknownOperatorError) Error() string {
	return errpos(err.Col, "unknown binary operator "+strconv.Quote(err.Operator))
}

func (err *UnknownOperatorError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token of a kind which is not valid where
// it appears, e.g. a parenthesis in a postfix sequence. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Kind is the kind of the token.
	Kind TokenKind
	// Text is the text of the token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid "+err.Kind.String()+" token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// StackUnderflowError is an error indicating an operator without two operands
// to apply to. It implements InputError.
type StackUnderflowError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's text.
	Operator string
	// Have is the number of operands that were available.
	Have int
}

func (err *StackUnderflowError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs 2 operands but has "+strconv.Itoa(err.Have))
}

func (err *StackUnderflowError) Pos() int {
	return err.Col
}

// MalformedExpressionError is an error indicating that evaluation did not
// leave exactly one value. It implements InputError.
type MalformedExpressionError struct {
	// Col is the position of the first value that was never consumed by an
	// operator, or 0 if there were no values at all.
	Col int
	// Values is the number of values left after evaluation.
	Values int
}

func (err *MalformedExpressionError) Error() string {
	if err.Values == 0 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, strconv.Itoa(err.Values)+" values with no operator between them")
}

func (err *MalformedExpressionError) Pos() int {
	return err.Col
}

// NumberFormatError is an error indicating a number token that could not be
// parsed. It implements InputError.
type NumberFormatError struct {
	// Col is the position of the number.
	Col int
	// Text is the text of the number token.
	Text string
	// Err is the underlying parse error, if any.
	Err error
}

func (err *NumberFormatError) Error() string {
	msg := "invalid number " + strconv.Quote(err.Text)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return errpos(err.Col, msg)
}

func (err *NumberFormatError) Pos() int {
	return err.Col
}

func (err *NumberFormatError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the rune column of the token that caused the error,
	// starting from 1.
	Pos() int
}

var (
	_ InputError = (*UnexpectedSymbolError)(nil)
	_ InputError = (*UnmatchedParenthesisError)(nil)
	_ InputError = (*UnknownOperatorError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*StackUnderflowError)(nil)
	_ InputError = (*MalformedExpressionError)(nil)
	_ InputError = (*NumberFormatError)(nil)
)
