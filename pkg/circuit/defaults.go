package circuit

// ringRadius is the distance of the satellite nodes from the core.
const ringRadius = 150

// DefaultNodes returns the competency graph shown on the page: the core node
// in the middle and six technologies on a ring around it.
func DefaultNodes() []Node {
	// Satellites sit on a hexagon starting at 12 o'clock, clockwise.
	const dx, dy = 130, 75 // ≈ ringRadius·cos(30°), ringRadius·sin(30°)
	return []Node{
		{ID: 0, X: 0, Y: 0, Radius: 40, Label: "CORE", Detail: "「仮想回路」の設計者。デジタル領域における10年以上の経験を基に、コードとクリエイティビティを融合させ、記憶に残る体験を創造します。"},
		{ID: 1, X: 0, Y: -ringRadius, Radius: 25, Label: "React", Detail: "コンポーネント設計と状態管理。大規模なUIを保守しやすい単位に分割します。"},
		{ID: 2, X: dx, Y: -dy, Radius: 25, Label: "TS", Detail: "TypeScriptによる型安全な開発。APIからUIまで型で契約を表現します。"},
		{ID: 3, X: dx, Y: dy, Radius: 25, Label: "Next", Detail: "Next.jsでのSSR/SSG。高速な初期表示とSEOを両立します。"},
		{ID: 4, X: 0, Y: ringRadius, Radius: 25, Label: "UI/UX", Detail: "ユーザー中心設計に基づき、美しさと機能性を両立したインターフェースを構築します。"},
		{ID: 5, X: -dx, Y: dy, Radius: 25, Label: "D3", Detail: "D3.jsによるデータ可視化。複雑な情報を直感的に伝えます。"},
		{ID: 6, X: -dx, Y: -dy, Radius: 25, Label: "AWS", Detail: "AWS上のサーバーレス構成とCI/CD。小さく始めて確実にスケールさせます。"},
	}
}

// DefaultEdges connects every satellite to the core and closes the outer ring.
func DefaultEdges() []Edge {
	edges := make([]Edge, 0, 12)
	for id := NodeID(1); id <= 6; id++ {
		edges = append(edges, Edge{From: CoreID, To: id})
	}
	for id := NodeID(1); id <= 6; id++ {
		edges = append(edges, Edge{From: id, To: id%6 + 1})
	}
	return edges
}

// DefaultGraph returns the built-in graph. It cannot fail.
func DefaultGraph() *Graph {
	g, err := NewGraph(DefaultNodes(), DefaultEdges(), CoreID)
	if err != nil {
		panic("circuit: invalid default graph: " + err.Error())
	}
	return g
}
