/*
Package lexmach provides an adapter for lexmachine to be used as a tokenizer.

lexmachine compiles a set of regular expressions into a DFA. Clients add
patterns and actions in an init function, literals (one- or multi-character
operators like '[' or '|') and keywords are added by the adapter:

    init := func(lexer *lexmachine.Lexer) {
        lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
        lexer.Add([]byte(`[a-z]+`), lexmach.MakeToken("WORD", wordID))
    }
    adapter, err := lexmach.NewLMAdapter(init, []string{"[", "]"}, nil, tokenIds)
    scan, err := adapter.Scanner("[abc]")
    for tok := scan.NextToken(); tok.TokType() != scanner.EOF; tok = scan.NextToken() {
        …
    }

Keywords are matched ahead of the init patterns, so a keyword wins against an
equally long match of, e.g., a word pattern.

A compiled adapter is read-only and may hand out scanners to concurrent
goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
