package ruleql

import (
	"encoding/json"
	"fmt"
)

// The wire shape keeps the two node variants distinguishable and child
// order intact:
//
//	{"type":"operator","op":"AND","left":{...},"right":{...}}
//	{"type":"comparison","attribute":"age","op":">=","value":18}
//
// Literal values ride on JSON's native scalar types, which carry the
// number/string/boolean distinction losslessly.

type nodeJSON struct {
	Type      string          `json:"type"`
	Op        string          `json:"op"`
	Left      json.RawMessage `json:"left,omitempty"`
	Right     json.RawMessage `json:"right,omitempty"`
	Attribute string          `json:"attribute,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
}

func (n *BinaryNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string    `json:"type"`
		Op    LogicalOp `json:"op"`
		Left  Node      `json:"left"`
		Right Node      `json:"right"`
	}{Type: "operator", Op: n.Op, Left: n.Left, Right: n.Right})
}

func (n *CompareNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string    `json:"type"`
		Attribute string    `json:"attribute"`
		Op        CompareOp `json:"op"`
		Value     Literal   `json:"value"`
	}{Type: "comparison", Attribute: n.Attr, Op: n.Op, Value: n.Value})
}

func (l Literal) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case NumberLiteral:
		return json.Marshal(l.Num)
	case StringLiteral:
		return json.Marshal(l.Str)
	case BoolLiteral:
		return json.Marshal(l.Bool)
	default:
		return nil, fmt.Errorf("unknown literal kind %d", int(l.Kind))
	}
}

// MarshalNode serializes the tree rooted at n.
func MarshalNode(n Node) ([]byte, error) {
	return json.Marshal(n)
}

// UnmarshalNode reverses MarshalNode. The decoded tree satisfies the same
// invariants as a parsed one; malformed or unknown node shapes are
// rejected.
func UnmarshalNode(data []byte) (Node, error) {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch raw.Type {
	case "operator":
		op := LogicalOp(raw.Op)
		if !op.Valid() {
			return nil, fmt.Errorf("unknown logical operator %q", raw.Op)
		}
		if len(raw.Left) == 0 || len(raw.Right) == 0 {
			return nil, fmt.Errorf("operator node must have two children")
		}
		left, err := UnmarshalNode(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := UnmarshalNode(raw.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryNode{Op: op, Left: left, Right: right}, nil

	case "comparison":
		op := CompareOp(raw.Op)
		if !op.Valid() {
			return nil, fmt.Errorf("unknown comparison operator %q", raw.Op)
		}
		if raw.Attribute == "" {
			return nil, fmt.Errorf("comparison node missing attribute")
		}
		lit, err := unmarshalLiteral(raw.Value)
		if err != nil {
			return nil, err
		}
		return &CompareNode{Attr: raw.Attribute, Op: op, Value: lit}, nil

	default:
		return nil, fmt.Errorf("unknown node type %q", raw.Type)
	}
}

func unmarshalLiteral(data json.RawMessage) (Literal, error) {
	if len(data) == 0 {
		return Literal{}, fmt.Errorf("comparison node missing value")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Literal{}, err
	}
	switch t := v.(type) {
	case float64:
		return NumberLit(t), nil
	case string:
		return StringLit(t), nil
	case bool:
		return BoolLit(t), nil
	default:
		return Literal{}, fmt.Errorf("literal must be a number, string or boolean, got %T", v)
	}
}
