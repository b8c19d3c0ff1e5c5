// Package fuzztests houses Go fuzz harnesses that exercise the front of the
// analysis pipeline (source -> lexer -> parser). Its goal is to smoke test
// robustness on arbitrary inputs and to guard the losslessness invariant:
// reprinting the token stream or the parsed tree must reproduce the input
// byte for byte, because every rewrite the fixer produces depends on it.
package fuzztests
