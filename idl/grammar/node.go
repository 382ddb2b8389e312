package grammar

// Kind identifies the grammar production a parse-tree node was built from.
// The vocabulary is closed: builders downstream switch exhaustively over it
// and ignore anything they do not recognize.
type Kind int

const (
	KindDocument Kind = iota
	KindInterface
	KindInterfaceName
	KindParent
	KindUUID
	KindOtherAttribute
	KindDocComment
	KindMethod
	KindMethodName
	KindParameter
	KindParameterAttribute
	KindType
	KindIdentifier
	KindPointer
	KindConst
	KindTypedefEnum
	KindVariant
	KindTypedefStruct
	KindField
)

var kindNames = map[Kind]string{
	KindDocument:           "document",
	KindInterface:          "interface",
	KindInterfaceName:      "interface_name",
	KindParent:             "parent",
	KindUUID:               "uuid",
	KindOtherAttribute:     "other_attribute",
	KindDocComment:         "doc_comment",
	KindMethod:             "method",
	KindMethodName:         "method_name",
	KindParameter:          "parameter",
	KindParameterAttribute: "parameter_attribute",
	KindType:               "type",
	KindIdentifier:         "identifier",
	KindPointer:            "pointer",
	KindConst:              "const",
	KindTypedefEnum:        "typedef_enum",
	KindVariant:            "variant",
	KindTypedefStruct:      "typedef_struct",
	KindField:              "field",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one node of the parse tree. Text is a substring of the original
// input buffer, never a copy; leaf nodes carry the matched text, inner nodes
// carry their children in source order.
type Node struct {
	Kind     Kind
	Text     string
	Pos      Position
	Children []*Node
}

func newNode(kind Kind, text string, pos Position) *Node {
	return &Node{Kind: kind, Text: text, Pos: pos}
}

func (n *Node) append(child *Node) {
	n.Children = append(n.Children, child)
}
