package box2d

import (
	"sort"
)

type B2BroadPhaseAddPairCallback func(userDataA interface{}, userDataB interface{})

/// Candidate pair of proxies, always stored with ProxyIdA < ProxyIdB.
type B2Pair struct {
	ProxyIdA B2TreeNodeId
	ProxyIdB B2TreeNodeId
}

const E_nullProxy = B2_nullNode

/// The broad-phase keeps proxies in a dynamic tree and turns the proxies
/// that moved since the last update into candidate pairs.
type B2BroadPhase struct {
	M_tree B2DynamicTree

	M_moveBuffer []B2TreeNodeId
	M_pairBuffer []B2Pair

	M_queryProxyId B2TreeNodeId
}

type PairByLessThan []B2Pair

func (a PairByLessThan) Len() int      { return len(a) }
func (a PairByLessThan) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a PairByLessThan) Less(i, j int) bool {
	return B2PairLessThan(a[i], a[j])
}

/// Lexicographic order on (ProxyIdA, ProxyIdB).
func B2PairLessThan(pair1, pair2 B2Pair) bool {
	if pair1.ProxyIdA != pair2.ProxyIdA {
		return pair1.ProxyIdA < pair2.ProxyIdA
	}
	return pair1.ProxyIdB < pair2.ProxyIdB
}

func MakeB2BroadPhase() B2BroadPhase {
	return B2BroadPhase{
		M_tree:         MakeB2DynamicTree(),
		M_moveBuffer:   make([]B2TreeNodeId, 0, 16),
		M_pairBuffer:   make([]B2Pair, 0, 16),
		M_queryProxyId: E_nullProxy,
	}
}

/// Fattening margins handed to the tree.
func (bp *B2BroadPhase) SetFattening(extension, multiplier float64) {
	bp.M_tree.SetFattening(extension, multiplier)
}

/// Create a proxy and buffer it so UpdatePairs looks at it.
func (bp *B2BroadPhase) CreateProxy(aabb B2AABB, userData interface{}) B2TreeNodeId {
	proxyId := bp.M_tree.CreateProxy(aabb, userData)
	bp.BufferMove(proxyId)
	return proxyId
}

func (bp *B2BroadPhase) DestroyProxy(proxyId B2TreeNodeId) {
	bp.UnBufferMove(proxyId)
	bp.M_tree.DestroyProxy(proxyId)
}

/// Move a proxy. Only proxies the tree had to re-insert are buffered.
func (bp *B2BroadPhase) MoveProxy(proxyId B2TreeNodeId, aabb B2AABB, displacement B2Vec2) {
	if bp.M_tree.MoveProxy(proxyId, aabb, displacement) {
		bp.BufferMove(proxyId)
	}
}

/// Force a proxy to be re-paired on the next UpdatePairs.
func (bp *B2BroadPhase) TouchProxy(proxyId B2TreeNodeId) {
	bp.BufferMove(proxyId)
}

func (bp *B2BroadPhase) BufferMove(proxyId B2TreeNodeId) {
	bp.M_moveBuffer = append(bp.M_moveBuffer, proxyId)
}

func (bp *B2BroadPhase) UnBufferMove(proxyId B2TreeNodeId) {
	for i := range bp.M_moveBuffer {
		if bp.M_moveBuffer[i] == proxyId {
			bp.M_moveBuffer[i] = E_nullProxy
		}
	}
}

func (bp *B2BroadPhase) GetMoveCount() int {
	return len(bp.M_moveBuffer)
}

func (bp *B2BroadPhase) GetUserData(proxyId B2TreeNodeId) interface{} {
	return bp.M_tree.GetUserData(proxyId)
}

func (bp *B2BroadPhase) GetFatAABB(proxyId B2TreeNodeId) B2AABB {
	return bp.M_tree.GetFatAABB(proxyId)
}

func (bp *B2BroadPhase) TestOverlap(proxyIdA, proxyIdB B2TreeNodeId) bool {
	return B2TestOverlapBoundingBoxes(bp.M_tree.GetFatAABB(proxyIdA), bp.M_tree.GetFatAABB(proxyIdB))
}

func (bp *B2BroadPhase) GetProxyCount() int {
	return bp.M_tree.GetProxyCount()
}

func (bp *B2BroadPhase) GetTreeHeight() int {
	return bp.M_tree.GetHeight()
}

func (bp *B2BroadPhase) GetTreeBalance() int {
	return bp.M_tree.GetMaxBalance()
}

func (bp *B2BroadPhase) GetTreeQuality() float64 {
	return bp.M_tree.GetAreaRatio()
}

/// Report each new candidate pair once, in (ProxyIdA, ProxyIdB) order.
func (bp *B2BroadPhase) UpdatePairs(addPairCallback B2BroadPhaseAddPairCallback) {
	bp.M_pairBuffer = bp.M_pairBuffer[:0]

	for _, proxyId := range bp.M_moveBuffer {
		if proxyId == E_nullProxy {
			continue
		}
		bp.M_queryProxyId = proxyId

		// Query with the fat AABB so pairs that may touch later are not missed.
		bp.M_tree.Query(bp.queryCallback, bp.M_tree.GetFatAABB(proxyId))
	}

	// The move buffer is cleared only once every query is done.
	bp.M_moveBuffer = bp.M_moveBuffer[:0]
	bp.M_queryProxyId = E_nullProxy

	// Sorting exposes duplicates as neighbours.
	sort.Stable(PairByLessThan(bp.M_pairBuffer))

	for i := 0; i < len(bp.M_pairBuffer); {
		primary := bp.M_pairBuffer[i]
		addPairCallback(bp.M_tree.GetUserData(primary.ProxyIdA), bp.M_tree.GetUserData(primary.ProxyIdB))
		i++

		for i < len(bp.M_pairBuffer) && bp.M_pairBuffer[i] == primary {
			i++
		}
	}
}

// Gathers pairs during UpdatePairs.
func (bp *B2BroadPhase) queryCallback(proxyId B2TreeNodeId) bool {
	// A proxy cannot form a pair with itself.
	if proxyId == bp.M_queryProxyId {
		return true
	}

	a, b := proxyId, bp.M_queryProxyId
	if b < a {
		a, b = b, a
	}
	bp.M_pairBuffer = append(bp.M_pairBuffer, B2Pair{ProxyIdA: a, ProxyIdB: b})

	return true
}

func (bp *B2BroadPhase) Query(callback B2TreeQueryCallback, aabb B2AABB) {
	bp.M_tree.Query(callback, aabb)
}

func (bp *B2BroadPhase) QueryPoint(callback B2TreeQueryCallback, point B2Vec2) {
	bp.M_tree.QueryPoint(callback, point)
}

func (bp *B2BroadPhase) RayCast(callback B2TreeRayCastCallback, input B2RayCastInput) {
	bp.M_tree.RayCast(callback, input)
}

func (bp *B2BroadPhase) ShiftOrigin(newOrigin B2Vec2) {
	bp.M_tree.ShiftOrigin(newOrigin)
}

/// Check the underlying tree, see B2DynamicTree.Validate.
func (bp *B2BroadPhase) Validate() error {
	return bp.M_tree.Validate()
}
