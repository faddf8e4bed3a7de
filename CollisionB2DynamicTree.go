package box2d

import (
	"fmt"
	"math"
)

/// Handle of a node in a B2DynamicTree. Proxy ids handed out by the tree and
/// the broad-phase are leaf node ids.
type B2TreeNodeId int32

/// The only invalid handle. Zero is a valid node.
const B2_nullNode B2TreeNodeId = -1

type B2TreeQueryCallback func(nodeId B2TreeNodeId) bool

/// Return a value <= 0 to stop the ray cast, or a value in (0, maxFraction]
/// to clip it. Returning maxFraction continues unchanged.
type B2TreeRayCastCallback func(input B2RayCastInput, nodeId B2TreeNodeId) float64

const b2TreeStackCapacity = 256

type B2TreeNode struct {
	/// Enlarged AABB
	Aabb B2AABB

	UserData interface{}

	Parent B2TreeNodeId
	Child1 B2TreeNodeId
	Child2 B2TreeNodeId

	// leaf = 0, free node = -1
	Height int
}

func (node B2TreeNode) IsLeaf() bool {
	return node.Child1 == B2_nullNode
}

func (node B2TreeNode) IsFree() bool {
	return node.Height == -1
}

/// A dynamic AABB tree broad-phase, inspired by Nathanael Presson's btDbvt.
/// Leaves are proxies holding a fattened copy of the client AABB, so a client
/// object can move by small amounts without triggering a tree update.
///
/// Nodes live in one slice and are addressed by B2TreeNodeId. Released ids go
/// to an explicit free list and are reused before the slice grows.
type B2DynamicTree struct {
	M_root     B2TreeNodeId
	M_nodes    []B2TreeNode
	M_freeList []B2TreeNodeId

	M_proxyCount     int
	M_insertionCount int

	M_aabbExtension  float64
	M_aabbMultiplier float64

	// Idle traversal stacks. A callback that queries the same tree takes
	// its own stack from here.
	m_stacks []*B2GrowableStack[B2TreeNodeId]
}

func MakeB2DynamicTree() B2DynamicTree {
	return B2DynamicTree{
		M_root:           B2_nullNode,
		M_nodes:          make([]B2TreeNode, 0, 16),
		M_freeList:       make([]B2TreeNodeId, 0, 16),
		M_aabbExtension:  B2_aabbExtension,
		M_aabbMultiplier: B2_aabbMultiplier,
	}
}

/// Change the fattening margins. Only proxies created or moved afterwards
/// pick up the new values.
func (tree *B2DynamicTree) SetFattening(extension, multiplier float64) {
	tree.M_aabbExtension = extension
	tree.M_aabbMultiplier = multiplier
}

// node returns the live node behind id and panics on a null, out of range or
// released handle.
func (tree *B2DynamicTree) node(id B2TreeNodeId) *B2TreeNode {
	B2Assert(0 <= id && int(id) < len(tree.M_nodes), "tree node %d out of range [0,%d)", id, len(tree.M_nodes))
	n := &tree.M_nodes[id]
	B2Assert(!n.IsFree(), "tree node %d has been freed", id)
	return n
}

func (tree *B2DynamicTree) GetUserData(proxyId B2TreeNodeId) interface{} {
	return tree.node(proxyId).UserData
}

func (tree *B2DynamicTree) GetFatAABB(proxyId B2TreeNodeId) B2AABB {
	return tree.node(proxyId).Aabb
}

func (tree *B2DynamicTree) GetProxyCount() int {
	return tree.M_proxyCount
}

/// Number of live nodes, leaves and internal.
func (tree *B2DynamicTree) GetNodeCount() int {
	return len(tree.M_nodes) - len(tree.M_freeList)
}

func (tree *B2DynamicTree) GetInsertionCount() int {
	return tree.M_insertionCount
}

func (tree *B2DynamicTree) allocateNode() B2TreeNodeId {
	var id B2TreeNodeId
	if n := len(tree.M_freeList); n > 0 {
		id = tree.M_freeList[n-1]
		tree.M_freeList = tree.M_freeList[:n-1]
	} else {
		id = B2TreeNodeId(len(tree.M_nodes))
		tree.M_nodes = append(tree.M_nodes, B2TreeNode{})
	}

	tree.M_nodes[id] = B2TreeNode{
		Parent: B2_nullNode,
		Child1: B2_nullNode,
		Child2: B2_nullNode,
		Height: 0,
	}
	return id
}

func (tree *B2DynamicTree) freeNode(id B2TreeNodeId) {
	tree.node(id)
	tree.M_nodes[id] = B2TreeNode{
		Parent: B2_nullNode,
		Child1: B2_nullNode,
		Child2: B2_nullNode,
		Height: -1,
	}
	tree.M_freeList = append(tree.M_freeList, id)
}

func (tree *B2DynamicTree) fatten(aabb B2AABB) B2AABB {
	r := MakeB2Vec2(tree.M_aabbExtension, tree.M_aabbExtension)
	return B2AABB{
		LowerBound: B2Vec2Sub(aabb.LowerBound, r),
		UpperBound: B2Vec2Add(aabb.UpperBound, r),
	}
}

/// Create a leaf for aabb (fattened) and return its id.
func (tree *B2DynamicTree) CreateProxy(aabb B2AABB, userData interface{}) B2TreeNodeId {
	proxyId := tree.allocateNode()

	n := &tree.M_nodes[proxyId]
	n.Aabb = tree.fatten(aabb)
	n.UserData = userData

	tree.InsertLeaf(proxyId)
	tree.M_proxyCount++

	return proxyId
}

func (tree *B2DynamicTree) DestroyProxy(proxyId B2TreeNodeId) {
	B2Assert(tree.node(proxyId).IsLeaf(), "destroying non-leaf tree node %d", proxyId)

	tree.RemoveLeaf(proxyId)
	tree.freeNode(proxyId)
	tree.M_proxyCount--
}

/// Refit a proxy after its client moved. When the fat AABB still contains
/// aabb nothing changes and false is returned. Otherwise the leaf is
/// re-inserted with a margin stretched along the displacement.
func (tree *B2DynamicTree) MoveProxy(proxyId B2TreeNodeId, aabb B2AABB, displacement B2Vec2) bool {
	n := tree.node(proxyId)
	B2Assert(n.IsLeaf(), "moving non-leaf tree node %d", proxyId)

	if n.Aabb.Contains(aabb) {
		return false
	}

	tree.RemoveLeaf(proxyId)

	b := tree.fatten(aabb)

	// predict where the proxy is heading
	d := B2Vec2MulScalar(tree.M_aabbMultiplier, displacement)

	if d.X < 0.0 {
		b.LowerBound.X += d.X
	} else {
		b.UpperBound.X += d.X
	}

	if d.Y < 0.0 {
		b.LowerBound.Y += d.Y
	} else {
		b.UpperBound.Y += d.Y
	}

	tree.M_nodes[proxyId].Aabb = b

	tree.InsertLeaf(proxyId)

	return true
}

// Cost of pushing leafAABB into child, given the inheritance cost of the
// parent level.
func (tree *B2DynamicTree) descendCost(child B2TreeNodeId, leafAABB B2AABB, inheritanceCost float64) float64 {
	c := &tree.M_nodes[child]
	combined := B2AABBCombine(leafAABB, c.Aabb).GetPerimeter()
	if c.IsLeaf() {
		return combined + inheritanceCost
	}
	return (combined - c.Aabb.GetPerimeter()) + inheritanceCost
}

func (tree *B2DynamicTree) InsertLeaf(leaf B2TreeNodeId) {
	tree.M_insertionCount++

	if tree.M_root == B2_nullNode {
		tree.M_root = leaf
		tree.M_nodes[leaf].Parent = B2_nullNode
		return
	}

	// Find the best sibling for this node.
	leafAABB := tree.M_nodes[leaf].Aabb
	index := tree.M_root
	for !tree.M_nodes[index].IsLeaf() {
		n := &tree.M_nodes[index]

		perimeter := n.Aabb.GetPerimeter()
		combinedPerimeter := B2AABBCombine(n.Aabb, leafAABB).GetPerimeter()

		// cost of a new parent for this node and the leaf
		cost := 2.0 * combinedPerimeter

		// minimum cost of pushing the leaf further down
		inheritanceCost := 2.0 * (combinedPerimeter - perimeter)

		cost1 := tree.descendCost(n.Child1, leafAABB, inheritanceCost)
		cost2 := tree.descendCost(n.Child2, leafAABB, inheritanceCost)

		if cost < cost1 && cost < cost2 {
			break
		}

		if cost1 < cost2 {
			index = n.Child1
		} else {
			index = n.Child2
		}
	}

	sibling := index

	// allocateNode may grow M_nodes, so no node pointers are held across it
	oldParent := tree.M_nodes[sibling].Parent
	newParent := tree.allocateNode()

	p := &tree.M_nodes[newParent]
	p.Parent = oldParent
	p.Aabb = B2AABBCombine(leafAABB, tree.M_nodes[sibling].Aabb)
	p.Height = tree.M_nodes[sibling].Height + 1
	p.Child1 = sibling
	p.Child2 = leaf

	if oldParent != B2_nullNode {
		if tree.M_nodes[oldParent].Child1 == sibling {
			tree.M_nodes[oldParent].Child1 = newParent
		} else {
			tree.M_nodes[oldParent].Child2 = newParent
		}
	} else {
		tree.M_root = newParent
	}
	tree.M_nodes[sibling].Parent = newParent
	tree.M_nodes[leaf].Parent = newParent

	tree.refitAncestors(tree.M_nodes[leaf].Parent)
}

// Walk from index to the root balancing each node and recomputing its
// height and AABB.
func (tree *B2DynamicTree) refitAncestors(index B2TreeNodeId) {
	for index != B2_nullNode {
		index = tree.Balance(index)

		n := &tree.M_nodes[index]
		B2Assert(n.Child1 != B2_nullNode && n.Child2 != B2_nullNode, "internal node %d lost a child", index)

		c1 := &tree.M_nodes[n.Child1]
		c2 := &tree.M_nodes[n.Child2]
		n.Height = 1 + MaxInt(c1.Height, c2.Height)
		n.Aabb.CombineTwoInPlace(c1.Aabb, c2.Aabb)

		index = n.Parent
	}
}

func (tree *B2DynamicTree) RemoveLeaf(leaf B2TreeNodeId) {
	if leaf == tree.M_root {
		tree.M_root = B2_nullNode
		return
	}

	parent := tree.M_nodes[leaf].Parent
	grandParent := tree.M_nodes[parent].Parent
	sibling := tree.M_nodes[parent].Child1
	if sibling == leaf {
		sibling = tree.M_nodes[parent].Child2
	}

	if grandParent == B2_nullNode {
		tree.M_root = sibling
		tree.M_nodes[sibling].Parent = B2_nullNode
		tree.freeNode(parent)
		return
	}

	// Destroy parent and connect sibling to grandParent.
	if tree.M_nodes[grandParent].Child1 == parent {
		tree.M_nodes[grandParent].Child1 = sibling
	} else {
		tree.M_nodes[grandParent].Child2 = sibling
	}
	tree.M_nodes[sibling].Parent = grandParent
	tree.freeNode(parent)

	tree.refitAncestors(grandParent)
}

/// Perform a left or right rotation if node A is imbalanced.
/// Returns the id of the node now at A's position.
func (tree *B2DynamicTree) Balance(iA B2TreeNodeId) B2TreeNodeId {
	A := tree.node(iA)
	if A.IsLeaf() || A.Height < 2 {
		return iA
	}

	iB := A.Child1
	iC := A.Child2
	B := tree.node(iB)
	C := tree.node(iC)

	balance := C.Height - B.Height

	// Rotate C up
	if balance > 1 {
		iF := C.Child1
		iG := C.Child2
		F := tree.node(iF)
		G := tree.node(iG)

		// Swap A and C
		C.Child1 = iA
		C.Parent = A.Parent
		A.Parent = iC

		// A's old parent should point to C
		tree.replaceChild(C.Parent, iA, iC)

		// The taller grandchild stays with C.
		if F.Height > G.Height {
			C.Child2 = iF
			A.Child2 = iG
			G.Parent = iA
			A.Aabb.CombineTwoInPlace(B.Aabb, G.Aabb)
			C.Aabb.CombineTwoInPlace(A.Aabb, F.Aabb)

			A.Height = 1 + MaxInt(B.Height, G.Height)
			C.Height = 1 + MaxInt(A.Height, F.Height)
		} else {
			C.Child2 = iG
			A.Child2 = iF
			F.Parent = iA
			A.Aabb.CombineTwoInPlace(B.Aabb, F.Aabb)
			C.Aabb.CombineTwoInPlace(A.Aabb, G.Aabb)

			A.Height = 1 + MaxInt(B.Height, F.Height)
			C.Height = 1 + MaxInt(A.Height, G.Height)
		}

		return iC
	}

	// Rotate B up
	if balance < -1 {
		iD := B.Child1
		iE := B.Child2
		D := tree.node(iD)
		E := tree.node(iE)

		// Swap A and B
		B.Child1 = iA
		B.Parent = A.Parent
		A.Parent = iB

		// A's old parent should point to B
		tree.replaceChild(B.Parent, iA, iB)

		if D.Height > E.Height {
			B.Child2 = iD
			A.Child1 = iE
			E.Parent = iA
			A.Aabb.CombineTwoInPlace(C.Aabb, E.Aabb)
			B.Aabb.CombineTwoInPlace(A.Aabb, D.Aabb)

			A.Height = 1 + MaxInt(C.Height, E.Height)
			B.Height = 1 + MaxInt(A.Height, D.Height)
		} else {
			B.Child2 = iE
			A.Child1 = iD
			D.Parent = iA
			A.Aabb.CombineTwoInPlace(C.Aabb, D.Aabb)
			B.Aabb.CombineTwoInPlace(A.Aabb, E.Aabb)

			A.Height = 1 + MaxInt(C.Height, D.Height)
			B.Height = 1 + MaxInt(A.Height, E.Height)
		}

		return iB
	}

	return iA
}

// replaceChild points parent at newChild where it pointed at oldChild. A
// null parent means oldChild was the root.
func (tree *B2DynamicTree) replaceChild(parent, oldChild, newChild B2TreeNodeId) {
	if parent == B2_nullNode {
		tree.M_root = newChild
		return
	}

	p := &tree.M_nodes[parent]
	if p.Child1 == oldChild {
		p.Child1 = newChild
		return
	}

	B2Assert(p.Child2 == oldChild, "node %d is not a child of %d", oldChild, parent)
	p.Child2 = newChild
}

func (tree *B2DynamicTree) takeStack() *B2GrowableStack[B2TreeNodeId] {
	n := len(tree.m_stacks)
	if n == 0 {
		return NewB2GrowableStack[B2TreeNodeId](b2TreeStackCapacity)
	}
	stack := tree.m_stacks[n-1]
	tree.m_stacks = tree.m_stacks[:n-1]
	return stack
}

func (tree *B2DynamicTree) giveStack(stack *B2GrowableStack[B2TreeNodeId]) {
	stack.Reset()
	tree.m_stacks = append(tree.m_stacks, stack)
}

/// Report every leaf whose fat AABB overlaps aabb.
func (tree *B2DynamicTree) Query(callback B2TreeQueryCallback, aabb B2AABB) {
	if tree.M_root == B2_nullNode {
		return
	}

	stack := tree.takeStack()
	defer tree.giveStack(stack)
	stack.Push(tree.M_root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop()
		n := &tree.M_nodes[nodeId]

		if !B2TestOverlapBoundingBoxes(n.Aabb, aabb) {
			continue
		}

		if n.IsLeaf() {
			if !callback(nodeId) {
				return
			}
			continue
		}

		stack.Push(n.Child1)
		stack.Push(n.Child2)
	}
}

/// Report every leaf whose fat AABB contains point.
func (tree *B2DynamicTree) QueryPoint(callback B2TreeQueryCallback, point B2Vec2) {
	if tree.M_root == B2_nullNode {
		return
	}

	stack := tree.takeStack()
	defer tree.giveStack(stack)
	stack.Push(tree.M_root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop()
		n := &tree.M_nodes[nodeId]

		if !n.Aabb.ContainsPoint(point) {
			continue
		}

		if n.IsLeaf() {
			if !callback(nodeId) {
				return
			}
			continue
		}

		stack.Push(n.Child1)
		stack.Push(n.Child2)
	}
}

/// Cast a ray against the leaves. The callback does the exact shape test and
/// controls the ray through its return value (see B2TreeRayCastCallback).
/// A zero-length ray reports nothing.
func (tree *B2DynamicTree) RayCast(callback B2TreeRayCastCallback, input B2RayCastInput) {
	if tree.M_root == B2_nullNode {
		return
	}

	p1 := input.P1
	p2 := input.P2
	r := B2Vec2Sub(p2, p1)
	if r.LengthSquared() <= 0.0 {
		return
	}
	r.Normalize()

	// v is perpendicular to the segment.
	v := B2Vec2CrossScalarVector(1.0, r)
	absV := B2Vec2Abs(v)

	maxFraction := input.MaxFraction

	segmentAABB := func() B2AABB {
		t := B2Vec2Add(p1, B2Vec2MulScalar(maxFraction, B2Vec2Sub(p2, p1)))
		return B2AABB{LowerBound: B2Vec2Min(p1, t), UpperBound: B2Vec2Max(p1, t)}
	}
	segment := segmentAABB()

	stack := tree.takeStack()
	defer tree.giveStack(stack)
	stack.Push(tree.M_root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop()
		n := &tree.M_nodes[nodeId]

		if !B2TestOverlapBoundingBoxes(n.Aabb, segment) {
			continue
		}

		// Separating axis for segment (Gino, p80).
		// |dot(v, p1 - c)| > dot(|v|, h)
		c := n.Aabb.GetCenter()
		h := n.Aabb.GetExtents()
		if math.Abs(B2Vec2Dot(v, B2Vec2Sub(p1, c)))-B2Vec2Dot(absV, h) > 0.0 {
			continue
		}

		if !n.IsLeaf() {
			stack.Push(n.Child1)
			stack.Push(n.Child2)
			continue
		}

		value := callback(B2RayCastInput{P1: p1, P2: p2, MaxFraction: maxFraction}, nodeId)

		if value <= 0.0 {
			return
		}

		maxFraction = value
		segment = segmentAABB()
	}
}

/// Height of the root, 0 for an empty tree.
func (tree *B2DynamicTree) GetHeight() int {
	if tree.M_root == B2_nullNode {
		return 0
	}
	return tree.M_nodes[tree.M_root].Height
}

/// Sum of all node perimeters over the root perimeter.
func (tree *B2DynamicTree) GetAreaRatio() float64 {
	if tree.M_root == B2_nullNode {
		return 0.0
	}

	rootArea := tree.M_nodes[tree.M_root].Aabb.GetPerimeter()

	totalArea := 0.0
	for i := range tree.M_nodes {
		if tree.M_nodes[i].IsFree() {
			continue
		}
		totalArea += tree.M_nodes[i].Aabb.GetPerimeter()
	}

	return totalArea / rootArea
}

/// Height of the subtree rooted at nodeId, computed by traversal.
func (tree *B2DynamicTree) ComputeHeight(nodeId B2TreeNodeId) int {
	n := tree.node(nodeId)
	if n.IsLeaf() {
		return 0
	}
	return 1 + MaxInt(tree.ComputeHeight(n.Child1), tree.ComputeHeight(n.Child2))
}

func (tree *B2DynamicTree) ComputeTotalHeight() int {
	if tree.M_root == B2_nullNode {
		return 0
	}
	return tree.ComputeHeight(tree.M_root)
}

/// Largest height difference between the two children of any node.
func (tree *B2DynamicTree) GetMaxBalance() int {
	maxBalance := 0
	for i := range tree.M_nodes {
		n := &tree.M_nodes[i]
		if n.Height <= 1 {
			continue
		}

		balance := AbsInt(tree.M_nodes[n.Child2].Height - tree.M_nodes[n.Child1].Height)
		maxBalance = MaxInt(maxBalance, balance)
	}
	return maxBalance
}

/// Check the tree links, heights, AABBs and node accounting. Returns the
/// first violation found.
func (tree *B2DynamicTree) Validate() error {
	reachable := 0
	leaves := 0

	if tree.M_root != B2_nullNode {
		if int(tree.M_root) >= len(tree.M_nodes) || tree.M_nodes[tree.M_root].IsFree() {
			return fmt.Errorf("root %d is not a live node", tree.M_root)
		}
		if p := tree.M_nodes[tree.M_root].Parent; p != B2_nullNode {
			return fmt.Errorf("root %d has parent %d", tree.M_root, p)
		}
		if err := tree.validateNode(tree.M_root, &reachable, &leaves); err != nil {
			return err
		}
	}

	seen := make(map[B2TreeNodeId]bool, len(tree.M_freeList))
	for _, id := range tree.M_freeList {
		if id < 0 || int(id) >= len(tree.M_nodes) {
			return fmt.Errorf("free list entry %d out of range", id)
		}
		if seen[id] {
			return fmt.Errorf("node %d is on the free list twice", id)
		}
		seen[id] = true
		if !tree.M_nodes[id].IsFree() {
			return fmt.Errorf("free list entry %d is live (height %d)", id, tree.M_nodes[id].Height)
		}
	}

	if reachable+len(tree.M_freeList) != len(tree.M_nodes) {
		return fmt.Errorf("%d reachable + %d free != %d nodes", reachable, len(tree.M_freeList), len(tree.M_nodes))
	}
	if leaves != tree.M_proxyCount {
		return fmt.Errorf("%d leaves but proxy count %d", leaves, tree.M_proxyCount)
	}
	return nil
}

func (tree *B2DynamicTree) validateNode(index B2TreeNodeId, reachable, leaves *int) error {
	n := &tree.M_nodes[index]
	if n.IsFree() {
		return fmt.Errorf("node %d is reachable but free", index)
	}
	*reachable++

	if n.IsLeaf() {
		if n.Child2 != B2_nullNode {
			return fmt.Errorf("leaf %d has child2 %d", index, n.Child2)
		}
		if n.Height != 0 {
			return fmt.Errorf("leaf %d has height %d", index, n.Height)
		}
		*leaves++
		return nil
	}

	for _, child := range [2]B2TreeNodeId{n.Child1, n.Child2} {
		if child < 0 || int(child) >= len(tree.M_nodes) {
			return fmt.Errorf("node %d has child %d out of range", index, child)
		}
		if p := tree.M_nodes[child].Parent; p != index {
			return fmt.Errorf("node %d has parent %d, expected %d", child, p, index)
		}
	}

	c1 := &tree.M_nodes[n.Child1]
	c2 := &tree.M_nodes[n.Child2]

	if height := 1 + MaxInt(c1.Height, c2.Height); n.Height != height {
		return fmt.Errorf("node %d has height %d, expected %d", index, n.Height, height)
	}

	if aabb := B2AABBCombine(c1.Aabb, c2.Aabb); aabb != n.Aabb {
		return fmt.Errorf("node %d aabb %v does not match children %v", index, n.Aabb, aabb)
	}

	if err := tree.validateNode(n.Child1, reachable, leaves); err != nil {
		return err
	}
	return tree.validateNode(n.Child2, reachable, leaves)
}

/// Rebuild an optimal tree from the current leaves (greedy pairing by
/// smallest combined perimeter). Quadratic in the number of leaves.
func (tree *B2DynamicTree) RebuildBottomUp() {
	leaves := make([]B2TreeNodeId, 0, tree.M_proxyCount)

	for i := range tree.M_nodes {
		id := B2TreeNodeId(i)
		n := &tree.M_nodes[i]
		if n.IsFree() {
			continue
		}

		if n.IsLeaf() {
			n.Parent = B2_nullNode
			leaves = append(leaves, id)
		} else {
			tree.freeNode(id)
		}
	}

	if len(leaves) == 0 {
		tree.M_root = B2_nullNode
		return
	}

	for len(leaves) > 1 {
		minCost := B2_maxFloat
		iMin, jMin := -1, -1

		for i := 0; i < len(leaves); i++ {
			aabbi := tree.M_nodes[leaves[i]].Aabb
			for j := i + 1; j < len(leaves); j++ {
				cost := B2AABBCombine(aabbi, tree.M_nodes[leaves[j]].Aabb).GetPerimeter()
				if cost < minCost {
					iMin, jMin = i, j
					minCost = cost
				}
			}
		}

		index1 := leaves[iMin]
		index2 := leaves[jMin]

		parentIndex := tree.allocateNode()
		parent := &tree.M_nodes[parentIndex]
		child1 := &tree.M_nodes[index1]
		child2 := &tree.M_nodes[index2]

		parent.Child1 = index1
		parent.Child2 = index2
		parent.Height = 1 + MaxInt(child1.Height, child2.Height)
		parent.Aabb = B2AABBCombine(child1.Aabb, child2.Aabb)
		parent.Parent = B2_nullNode

		child1.Parent = parentIndex
		child2.Parent = parentIndex

		last := len(leaves) - 1
		leaves[jMin] = leaves[last]
		leaves[iMin] = parentIndex
		leaves = leaves[:last]
	}

	tree.M_root = leaves[0]
}

/// Translate every node by -newOrigin.
func (tree *B2DynamicTree) ShiftOrigin(newOrigin B2Vec2) {
	for i := range tree.M_nodes {
		if tree.M_nodes[i].IsFree() {
			continue
		}
		tree.M_nodes[i].Aabb.LowerBound.OperatorMinusInplace(newOrigin)
		tree.M_nodes[i].Aabb.UpperBound.OperatorMinusInplace(newOrigin)
	}
}
