package output

import (
	"github.com/disiqueira/gotree/v3"
)

// VisualBoardTree renders pages as branches and their favorites as leaves, keeping insertion order.
type VisualBoardTree struct {
	tree gotree.Tree
}

type VisualPage struct {
	node gotree.Tree
}

func NewVisualBoardTree(rootLabel string) VisualBoardTree {
	return VisualBoardTree{tree: gotree.New(rootLabel)}
}

func (t VisualBoardTree) InsertPage(label string) VisualPage {
	return VisualPage{node: t.tree.Add(label)}
}

func (p VisualPage) InsertEntry(label string) {
	p.node.Add(label)
}

func (t VisualBoardTree) Render() string {
	return t.tree.Print()
}
