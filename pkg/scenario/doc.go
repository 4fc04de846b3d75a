// Package scenario describes render sequences in YAML and plays them
// against an in-memory document.
//
// A scenario file lists steps. Each step renders a tree (or unmounts) into
// the app container and may state the expected HTML, the expected error
// code and the expected number of node moves:
//
//	name: keyed-reorder
//	description: Keyed children move instead of being recreated.
//	steps:
//	  - tree:
//	      tag: ul
//	      children:
//	        - {tag: li, key: a, text: a}
//	        - {tag: li, key: b, text: b}
//	  - tree:
//	      tag: ul
//	      children:
//	        - {tag: li, key: b, text: b}
//	        - {tag: li, key: a, text: a}
//	    expect: '<ul><li>b</li><li>a</li></ul>'
//	    moves: 1
//
// Play it with a Player:
//
//	sc, err := scenario.Load("keyed-reorder.yaml")
//	if err != nil {
//	    return err
//	}
//	for _, err := range scenario.NewPlayer().Verify(sc) {
//	    fmt.Println(err)
//	}
package scenario
