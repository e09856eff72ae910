package cli

// Cylinder frames cycled by the spin animation. The first frame is also the
// resting position.
var frames = []string{
	`
        ______
     .-'  __  '-.
    /   /(  )\   \
   |  ( )    ( )  |
   |      ()      |
   |  ( )    (*)  |
    \   \(  )/   /
     '-.______.-'
`,
	`
        ______
     .-'  __  '-.
    /   /(  )\   \
   |  ( )    (*)  |
   |      ()      |
   |  ( )    ( )  |
    \   \(  )/   /
     '-.______.-'
`,
	`
        ______
     .-'  __  '-.
    /   /(**)\   \
   |  ( )    ( )  |
   |      ()      |
   |  ( )    ( )  |
    \   \(  )/   /
     '-.______.-'
`,
}

const tombstone = `
      _______
     /       \
    |  R.I.P  |
    |         |
    |  1 in 6 |
   _|_________|_
`

const rule = "========================================"
