package gen

import "github.com/rawbytedev/datacore/pkg/typed"

type Color int32

const ColorUnknown Color = -1
const ColorRed Color = 0
const ColorGreen Color = 1
const ColorBlue Color = 2

var colorByName = map[string]Color{
	"Red":   ColorRed,
	"Green": ColorGreen,
	"Blue":  ColorBlue,
}

type PointRef interface{ isPoint() }

func (*Point) isPoint() {}

type Point struct {
	X int32
	Y int32
}

type BaseRef interface{ isBase() }

func (*Base) isBase() {}

type Base struct {
	A uint8
}

type DerivedRef interface{ isDerived() }

func (*Derived) isDerived() {}

// Derived embeds Base by value, so *Derived satisfies BaseRef for
// free through Go's method-set promotion: a reference<Base> property
// can be materialised as a *Derived without any generated type-switch.
type Derived struct {
	Base
	B string
}

// AsBase narrows to the embedded Base.
func (v *Derived) AsBase() *Base { return &v.Base }

type NodeRef interface{ isNode() }

func (*Node) isNode() {}

type Node struct {
	Name string
	Next *typed.LazyRef[NodeRef]
}

type ItemRef interface{ isItem() }

func (*Item) isItem() {}

type Item struct {
	Value int32
}

type BagRef interface{ isBag() }

func (*Bag) isBag() {}

type Bag struct {
	Items []*Item
}

type WidgetRef interface{ isWidget() }

func (*Widget) isWidget() {}

type Widget struct {
	Tint Color
}

type HolderRef interface{ isHolder() }

func (*Holder) isHolder() {}

// Holder's Ref is declared against BaseRef, so a test can point it at
// either a *Base instance or a *Derived one and resolve through the
// same field — the marker-interface substitution pkg/generator exists
// for.
type Holder struct {
	Ref *typed.LazyRef[BaseRef]
}

type LoopRef interface{ isLoop() }

func (*Loop) isLoop() {}

// Loop's Next is an embedded-class array that may point back at its
// own instance index, the shape that actually exercises the runtime's
// cycle break: unlike a reference, a class array element is
// materialised eagerly through GetOrReadInstance as part of the
// parent's own read, so a self-referential entry recurses into the
// same (structIndex, instanceIndex) before the outer read returns.
type Loop struct {
	Next []*Loop
}
