package rpn

// Calculation holds every stage of evaluating an expression.
type Calculation struct {
	// Input is the source expression.
	Input string
	// Tokens is the infix token sequence.
	Tokens []Token
	// Postfix is the token sequence in postfix order.
	Postfix []Token
	// Value is the result.
	Value float64
}

// Calculate tokenizes, converts, and evaluates an expression. If any stage
// fails, the returned Calculation still holds the stages that completed.
func Calculate(src string) (*Calculation, error) {
	c := Calculation{Input: src}
	toks, err := TokenizeString(src)
	if err != nil {
		return &c, err
	}
	c.Tokens = toks
	post, err := ToPostfix(toks)
	if err != nil {
		return &c, err
	}
	c.Postfix = post
	v, err := Evaluate(post)
	if err != nil {
		return &c, err
	}
	c.Value = v
	return &c, nil
}

// Eval is a shortcut to calculate the value of an expression.
func Eval(src string) (float64, error) {
	c, err := Calculate(src)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}
