package ecs

// Commands buffers structural changes requested while a query is iterating.
// They are applied in request order once the outermost query returns, so a
// visitor never sees the store it is walking change shape underneath it.
type Commands struct {
	ops []command
}

type opKind uint8

const (
	opAdd opKind = iota
	opRemove
	opDestroy
	opDefer
)

func (o opKind) String() string {
	switch o {
	case opAdd:
		return "add"
	case opRemove:
		return "remove"
	case opDestroy:
		return "destroy"
	case opDefer:
		return "defer"
	default:
		return "unknown"
	}
}

type command struct {
	op     opKind
	entity Entity
	kind   Kind
	apply  func()
}

func (c *Commands) push(cmd command) {
	c.ops = append(c.ops, cmd)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// drain hands back the queued operations and resets the buffer.
func (c *Commands) drain() []command {
	ops := c.ops
	c.ops = nil
	return ops
}
