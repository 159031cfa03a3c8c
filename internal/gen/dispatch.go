package gen

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/typed"
)

// Dispatch is this fixture's DispatchFunc: the one place that maps a
// struct index back to a concrete generated reader.
func Dispatch(ctx *typed.ReadContext, structIndex, instanceIndex int32) (any, error) {
	switch structIndex {
	case StructPoint:
		return typed.GetOrReadInstance[*Point](ctx, structIndex, instanceIndex, ReadPoint)
	case StructBase:
		return typed.GetOrReadInstance[*Base](ctx, structIndex, instanceIndex, ReadBase)
	case StructDerived:
		return typed.GetOrReadInstance[*Derived](ctx, structIndex, instanceIndex, ReadDerived)
	case StructNode:
		return typed.GetOrReadInstance[*Node](ctx, structIndex, instanceIndex, ReadNode)
	case StructItem:
		return typed.GetOrReadInstance[*Item](ctx, structIndex, instanceIndex, ReadItem)
	case StructBag:
		return typed.GetOrReadInstance[*Bag](ctx, structIndex, instanceIndex, ReadBag)
	case StructWidget:
		return typed.GetOrReadInstance[*Widget](ctx, structIndex, instanceIndex, ReadWidget)
	case StructHolder:
		return typed.GetOrReadInstance[*Holder](ctx, structIndex, instanceIndex, ReadHolder)
	case StructLoop:
		return typed.GetOrReadInstance[*Loop](ctx, structIndex, instanceIndex, ReadLoop)
	default:
		return nil, fmt.Errorf("%w: struct index %d", typed.ErrNullDispatch, structIndex)
	}
}
