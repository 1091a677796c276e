// Package rpn implements a calculator for arithmetic over non-negative
// integers with + - * / and parentheses.
//
// Evaluation happens in three stages. Tokenize scans a line of text into
// tokens, ToPostfix reorders them into reverse Polish notation with the
// shunting-yard algorithm, and Evaluate computes the result on a value stack.
// * and / bind tighter than + and -, and operators of equal priority group
// left to right, so "10 - 2 - 3" is 5. Division is floating-point: "5 / 0" is
// +Inf, not an error.
//
// Every stage is a pure function of its input and reports invalid input with
// an error implementing InputError.
package rpn
