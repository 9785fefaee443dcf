package digraph

// table maps two-character digraphs to their result, following the RFC 1345
// mnemonics the original editor uses. This is the commonly used subset:
// Latin accents, punctuation, currency, and Greek letters.
var table = map[[2]rune]rune{
	// Accented vowels, grave
	{'a', '!'}: 'à', {'e', '!'}: 'è', {'i', '!'}: 'ì', {'o', '!'}: 'ò', {'u', '!'}: 'ù',
	{'A', '!'}: 'À', {'E', '!'}: 'È', {'I', '!'}: 'Ì', {'O', '!'}: 'Ò', {'U', '!'}: 'Ù',

	// Acute
	{'a', '\''}: 'á', {'e', '\''}: 'é', {'i', '\''}: 'í', {'o', '\''}: 'ó', {'u', '\''}: 'ú',
	{'A', '\''}: 'Á', {'E', '\''}: 'É', {'I', '\''}: 'Í', {'O', '\''}: 'Ó', {'U', '\''}: 'Ú',
	{'y', '\''}: 'ý', {'Y', '\''}: 'Ý',

	// Circumflex
	{'a', '>'}: 'â', {'e', '>'}: 'ê', {'i', '>'}: 'î', {'o', '>'}: 'ô', {'u', '>'}: 'û',
	{'A', '>'}: 'Â', {'E', '>'}: 'Ê', {'I', '>'}: 'Î', {'O', '>'}: 'Ô', {'U', '>'}: 'Û',

	// Diaeresis
	{'a', ':'}: 'ä', {'e', ':'}: 'ë', {'i', ':'}: 'ï', {'o', ':'}: 'ö', {'u', ':'}: 'ü',
	{'A', ':'}: 'Ä', {'E', ':'}: 'Ë', {'I', ':'}: 'Ï', {'O', ':'}: 'Ö', {'U', ':'}: 'Ü',
	{'y', ':'}: 'ÿ',

	// Tilde
	{'a', '?'}: 'ã', {'n', '?'}: 'ñ', {'o', '?'}: 'õ',
	{'A', '?'}: 'Ã', {'N', '?'}: 'Ñ', {'O', '?'}: 'Õ',

	// Ring, cedilla, stroke
	{'a', 'a'}: 'å', {'A', 'A'}: 'Å',
	{'c', ','}: 'ç', {'C', ','}: 'Ç',
	{'o', '/'}: 'ø', {'O', '/'}: 'Ø',
	{'a', 'e'}: 'æ', {'A', 'E'}: 'Æ',
	{'s', 's'}: 'ß',
	{'d', '-'}: 'đ', {'D', '-'}: 'Đ',
	{'t', 'h'}: 'þ', {'T', 'H'}: 'Þ',
	{'d', 'h'}: 'ð', {'D', 'H'}: 'Ð',

	// Punctuation and symbols
	{'!', 'I'}: '¡', {'?', 'I'}: '¿',
	{'<', '<'}: '«', {'>', '>'}: '»',
	{'s', 'E'}: '§', {'P', 'I'}: '¶',
	{'m', 'y'}: 'µ', {'D', 'G'}: '°',
	{'+', '-'}: '±', {'-', ':'}: '÷', {'*', 'X'}: '×',
	{'1', '2'}: '½', {'1', '4'}: '¼', {'3', '4'}: '¾',
	{'\'', '6'}: '‘', {'\'', '9'}: '’',
	{'"', '6'}: '“', {'"', '9'}: '”',
	{'-', 'N'}: '–', {'-', 'M'}: '—',
	{'.', '.'}: '‥', {',', '.'}: '…',
	{'-', '>'}: '→', {'<', '-'}: '←', {'-', '!'}: '↑', {'-', 'v'}: '↓',
	{'=', '>'}: '⇒', {'=', '='}: '⇔',
	{'O', 'K'}: '✓', {'X', 'X'}: '✗',

	// Currency
	{'C', 't'}: '¢', {'P', 'd'}: '£', {'Y', 'e'}: '¥', {'E', 'u'}: '€', {'C', 'u'}: '¤',

	// Legal
	{'C', 'o'}: '©', {'R', 'g'}: '®', {'T', 'M'}: '™',

	// Greek lowercase
	{'a', '*'}: 'α', {'b', '*'}: 'β', {'g', '*'}: 'γ', {'d', '*'}: 'δ',
	{'e', '*'}: 'ε', {'z', '*'}: 'ζ', {'y', '*'}: 'η', {'h', '*'}: 'θ',
	{'i', '*'}: 'ι', {'k', '*'}: 'κ', {'l', '*'}: 'λ', {'m', '*'}: 'μ',
	{'n', '*'}: 'ν', {'c', '*'}: 'ξ', {'o', '*'}: 'ο', {'p', '*'}: 'π',
	{'r', '*'}: 'ρ', {'s', '*'}: 'σ', {'t', '*'}: 'τ', {'u', '*'}: 'υ',
	{'f', '*'}: 'φ', {'x', '*'}: 'χ', {'q', '*'}: 'ψ', {'w', '*'}: 'ω',

	// Greek uppercase
	{'A', '*'}: 'Α', {'B', '*'}: 'Β', {'G', '*'}: 'Γ', {'D', '*'}: 'Δ',
	{'E', '*'}: 'Ε', {'Z', '*'}: 'Ζ', {'Y', '*'}: 'Η', {'H', '*'}: 'Θ',
	{'I', '*'}: 'Ι', {'K', '*'}: 'Κ', {'L', '*'}: 'Λ', {'M', '*'}: 'Μ',
	{'N', '*'}: 'Ν', {'C', '*'}: 'Ξ', {'O', '*'}: 'Ο', {'P', '*'}: 'Π',
	{'R', '*'}: 'Ρ', {'S', '*'}: 'Σ', {'T', '*'}: 'Τ', {'U', '*'}: 'Υ',
	{'F', '*'}: 'Φ', {'X', '*'}: 'Χ', {'Q', '*'}: 'Ψ', {'W', '*'}: 'Ω',

	// Typography
	{'S', 'E'}: '☺', {'N', 'S'}: ' ',
}

// Lookup resolves a two-character digraph. Order matters: "a:" is not ":a".
func Lookup(first, second rune) (rune, bool) {
	r, ok := table[[2]rune{first, second}]
	return r, ok
}

// Count returns the number of entries in the digraph table.
func Count() int { return len(table) }
