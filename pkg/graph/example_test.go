package graph_test

import (
	"fmt"

	"github.com/matzehuels/godswood/pkg/graph"
)

func ExampleMarshalScene() {
	s := graph.Scene{Woods: []graph.Wood{{
		Name:     "app",
		MaxDepth: 1,
		Scales:   map[int]float64{1: 1},
		Nodes:    []graph.Node{{ID: ".app", Name: "app", Kind: graph.KindRoot, Depth: 1}},
		Edges:    []graph.Edge{},
	}}}

	data, _ := graph.MarshalScene(s)
	back, _ := graph.UnmarshalScene(data)
	w, _ := back.Find("app")
	fmt.Println(w.Name, len(w.Nodes))
	// Output: app 1
}
