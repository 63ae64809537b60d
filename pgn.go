package chess

import (
	"strconv"
	"strings"
	"unicode"
)

// TokenType identifies the lexical class of a PGN token.
type TokenType int

const (
	EOF TokenType = iota
	TagStart
	TagEnd
	TagKey
	TagValue
	MoveNumber
	SAN
	NAG
	Comment
	VariationStart
	VariationEnd
	Result
)

var tokenNames = map[TokenType]string{
	EOF:            "EOF",
	TagStart:       "TagStart",
	TagEnd:         "TagEnd",
	TagKey:         "TagKey",
	TagValue:       "TagValue",
	MoveNumber:     "MoveNumber",
	SAN:            "SAN",
	NAG:            "NAG",
	Comment:        "Comment",
	VariationStart: "VariationStart",
	VariationEnd:   "VariationEnd",
	Result:         "Result",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical unit of a PGN game.
type Token struct {
	Type  TokenType
	Value string
}

// TokenizeGame splits PGN text into tokens. Comments keep their text
// without the delimiters; escape lines starting with '%' are dropped.
func TokenizeGame(text string) ([]Token, error) {
	var tokens []Token
	runes := []rune(text)
	inTag := false
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '%' && (i == 0 || runes[i-1] == '\n'):
			i = skipUntil(runes, i, '\n')
		case r == '[':
			tokens = append(tokens, Token{Type: TagStart, Value: "["})
			inTag = true
			i++
		case r == ']':
			tokens = append(tokens, Token{Type: TagEnd, Value: "]"})
			inTag = false
			i++
		case r == '"':
			value, next, err := readString(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Type: TagValue, Value: value})
			i = next
		case r == '{':
			end := skipUntil(runes, i, '}')
			if end >= len(runes) {
				return nil, &ParseError{Message: "unterminated comment", Position: len(tokens)}
			}
			tokens = append(tokens, Token{Type: Comment, Value: strings.TrimSpace(string(runes[i+1 : end]))})
			i = end + 1
		case r == ';':
			end := skipUntil(runes, i, '\n')
			tokens = append(tokens, Token{Type: Comment, Value: strings.TrimSpace(string(runes[i+1 : min(end, len(runes))]))})
			i = end
		case r == '(':
			tokens = append(tokens, Token{Type: VariationStart, Value: "("})
			i++
		case r == ')':
			tokens = append(tokens, Token{Type: VariationEnd, Value: ")"})
			i++
		default:
			end := i
			for end < len(runes) && !isDelimiter(runes[end]) {
				end++
			}
			word := string(runes[i:end])
			if end == i {
				return nil, &ParseError{Message: "unexpected character", Token: string(r), Position: len(tokens)}
			}
			i = end
			if inTag {
				tokens = append(tokens, Token{Type: TagKey, Value: word})
				continue
			}
			tokens = append(tokens, classifyWord(word)...)
		}
	}
	return tokens, nil
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(`[]{}();"`, r)
}

func skipUntil(runes []rune, i int, r rune) int {
	for i < len(runes) && runes[i] != r {
		i++
	}
	return i
}

func readString(runes []rune, start int) (string, int, error) {
	var sb strings.Builder
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if i+1 < len(runes) {
				i++
				sb.WriteRune(runes[i])
			}
		case '"':
			return sb.String(), i + 1, nil
		default:
			sb.WriteRune(runes[i])
		}
	}
	return "", len(runes), &ParseError{Message: "unterminated tag value", Position: start}
}

// classifyWord splits a movetext word such as "12.", "12...Nf3", "$1",
// "e4!?" or "1-0" into tokens.
func classifyWord(word string) []Token {
	switch word {
	case "1-0", "0-1", "1/2-1/2", "*":
		return []Token{{Type: Result, Value: word}}
	}
	if strings.HasPrefix(word, "$") {
		return []Token{{Type: NAG, Value: word}}
	}
	digits := 0
	for digits < len(word) && word[digits] >= '0' && word[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(word) && word[digits] == '.' {
		dots := digits
		for dots < len(word) && word[dots] == '.' {
			dots++
		}
		tokens := []Token{{Type: MoveNumber, Value: word[:dots]}}
		if dots < len(word) {
			tokens = append(tokens, classifyWord(word[dots:])...)
		}
		return tokens
	}
	if digits == len(word) {
		return []Token{{Type: MoveNumber, Value: word}}
	}
	return []Token{{Type: SAN, Value: word}}
}

// Parser holds the state needed during parsing.
type Parser struct {
	game     *Game
	tokens   []Token
	position int
	rules    DrawRules
}

// NewParser creates a new parser instance initialized with the given tokens.
// The game starts from the standard position unless a FEN tag says
// otherwise.
//
// Example:
//
//	tokens, _ := TokenizeGame(pgn)
//	parser := NewParser(tokens)
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// currentToken returns the current token being processed.
func (p *Parser) currentToken() Token {
	if p.position >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.position]
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.position++
}

func (p *Parser) errorf(message string) *ParseError {
	return &ParseError{Message: message, Token: p.currentToken().Value, Position: p.position}
}

// Parse processes all tokens and returns the complete game: tag pairs,
// then the main line of moves, then the result. Comments and NAGs are
// skipped. Variations are rejected. A Ply tag moves the cursor back to
// that ply and is not kept among the tag pairs.
//
// Example:
//
//	game, err := parser.Parse()
//	if err != nil {
//	    log.Fatal("Error parsing game:", err)
//	}
//	fmt.Printf("Event: %s\n", game.GetTagPair("Event"))
func (p *Parser) Parse() (*Game, error) {
	if len(p.tokens) == 0 {
		return nil, errNoGame()
	}
	tagPairs := make(TagPairs)
	for p.currentToken().Type == TagStart {
		key, value, err := p.parseTagPair()
		if err != nil {
			return nil, err
		}
		tagPairs[key] = value
	}

	options := []func(*Game){WithDrawRules(p.rules)}
	// check if the game has a starting position
	if value, ok := tagPairs["FEN"]; ok {
		fen, err := FEN(value)
		if err != nil {
			return nil, &ParseError{Message: "invalid FEN tag", Token: value, Position: p.position, Err: err}
		}
		options = append(options, fen)
	}
	p.game = NewGame(options...)
	p.game.tagPairs = tagPairs

	if err := p.parseMoveText(); err != nil {
		return nil, err
	}
	if value, ok := tagPairs[plyTag]; ok {
		ply, err := strconv.Atoi(value)
		if err != nil || ply < 0 || ply >= len(p.game.states) {
			return nil, &ParseError{Message: "invalid Ply tag", Token: value, Position: p.position, Err: err}
		}
		p.game.currentIndex = ply
		delete(tagPairs, plyTag)
	}
	return p.game, nil
}

func errNoGame() *ParseError {
	return &ParseError{Message: "empty input", Err: ErrNoGameFound}
}

func (p *Parser) parseTagPair() (string, string, error) {
	// Expect [
	p.advance()

	if p.currentToken().Type != TagKey {
		return "", "", p.errorf("expected tag key")
	}
	key := p.currentToken().Value
	p.advance()

	if p.currentToken().Type != TagValue {
		return "", "", p.errorf("expected tag value")
	}
	value := p.currentToken().Value
	p.advance()

	if p.currentToken().Type != TagEnd {
		return "", "", p.errorf("expected tag end")
	}
	p.advance()
	return key, value, nil
}

func (p *Parser) parseMoveText() error {
	for p.position < len(p.tokens) {
		token := p.currentToken()
		switch token.Type {
		case MoveNumber:
			number, err := moveNumberValue(token)
			if err != nil || number != p.game.CurrentState().BoardState.FullMoveNumber() {
				return p.errorf("unexpected move number")
			}
			p.advance()

		case NAG, Comment:
			p.advance()

		case SAN:
			if err := p.game.PushNotationMove(token.Value, AlgebraicNotation{}); err != nil {
				return &ParseError{Message: "invalid move", Token: token.Value, Position: p.position, Err: err}
			}
			p.advance()

		case VariationStart:
			return p.errorf("variations are not supported")

		case Result:
			p.advance()
			if p.position < len(p.tokens) {
				return p.errorf("unexpected token after result")
			}
			return nil

		default:
			return p.errorf("unexpected token")
		}
	}
	return nil
}

// parsePGN parses a single PGN game.
func parsePGN(s string, rules DrawRules) (*Game, error) {
	tokens, err := TokenizeGame(s)
	if err != nil {
		return nil, err
	}
	parser := NewParser(tokens)
	parser.rules = rules
	return parser.Parse()
}

func looksLikeCoordinateMoves(s string) bool {
	if strings.ContainsAny(s, "[]{}()") {
		return false
	}

	toks := splitMoveTokens(s)
	if len(toks) == 0 {
		return false
	}

	ok := 0
	for _, t := range toks {
		if isCoordinateMoveToken(t) || t == string(NoOutcome) {
			ok++
		}
	}
	return ok == len(toks)
}

func splitMoveTokens(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ",;")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func parseCoordinateMovesGame(s string, rules DrawRules) (*Game, error) {
	game := NewGame(WithDrawRules(rules))

	var moves []string
	for _, tok := range splitMoveTokens(s) {
		if tok != string(NoOutcome) {
			moves = append(moves, tok)
		}
	}
	if err := game.replay(moves, UCINotation{}); err != nil {
		return nil, err
	}
	return game, nil
}

// parseGame parses PGN text, falling back to a bare list of coordinate
// moves.
func parseGame(s string, rules DrawRules) (*Game, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errNoGame()
	}
	if looksLikeCoordinateMoves(s) {
		return parseCoordinateMovesGame(s, rules)
	}
	return parsePGN(s, rules)
}

// moveNumberValue returns the number of a MoveNumber token such as "12."
// or "12...".
func moveNumberValue(t Token) (int, error) {
	return strconv.Atoi(strings.TrimRight(t.Value, "."))
}
