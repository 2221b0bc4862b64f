package merkle

// The tree is a flat array: the root is at 0 and node i has children at
// 2i+1 and 2i+2. Leaves are the nodes without children.

func left(i int) int  { return 2*i + 1 }
func right(i int) int { return 2*i + 2 }

// parent of a non-root node.
func parent(i int) int { return (i - 1) / 2 }

// sibling of a non-root node. Left children are odd, right children even.
func sibling(i int) int {
	if i%2 == 0 {
		return i - 1
	}
	return i + 1
}

func isTreeNode(treeLen int, i int) bool {
	return i >= 0 && i < treeLen
}

func isLeafNode(treeLen int, i int) bool {
	return isTreeNode(treeLen, i) && !isTreeNode(treeLen, left(i))
}

// TreeLen returns the node count of a tree with leafCount leaves.
func TreeLen(leafCount int) int {
	return 2*leafCount - 1
}
