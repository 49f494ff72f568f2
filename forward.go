package pac

// Source is implemented by anything a Callback can be Connect-ed to.
// *Signal[T, R] satisfies it. A *Forwarder[T, R, T2, R2] connects a
// Callback[T2, R2] but returns the underlying *Connection[T, R], so it
// satisfies Source[T2, R2] only when T2 is T and R2 is R: a forwarder that
// keeps the signature can itself be wrapped by another forwarder, while one
// that changes the signature cannot.
type Source[T, R any] interface {
	Connect(cb Callback[T, R]) *Connection[T, R]
}

// Identity returns the identity transform for X, for callers whose source
// and forwarded signatures already agree on a position. Go generics cannot
// default a type parameter to "the same type as another," so unlike the
// original's automatic default transforms, the caller spells this out
// explicitly.
func Identity[X any]() func(X) X {
	return func(x X) X { return x }
}

// Forwarder lets user slots of signature R2(T2) connect to a Source[T, R] by
// composing an input transform (T -> T2, preparing the forwarded signal's
// arguments for the user slot) and an output transform (R2 -> R,
// post-processing the user slot's return into the underlying source's
// return type). See Source for when a Forwarder can itself be forwarded.
//
// A Forwarder holds no dispatch state of its own: every Emit still happens
// inside the wrapped Signal, so a Forwarder inherits that signal's
// observability (metrics, tracer, hooks) rather than duplicating it.
type Forwarder[T, R, T2, R2 any] struct {
	src func(Callback[T2, R2]) *Connection[T, R]
}

// ForwarderOption configures a Forwarder at construction. Reserved for
// future tuning (none of the current options affect behavior); present so
// call sites follow the same functional-options shape as Signal and Toe.
type ForwarderOption[T, R, T2, R2 any] func(*Forwarder[T, R, T2, R2])

// NewForwarder builds a Forwarder over src using in to translate the
// source's arguments into the user slot's arguments, and out to translate
// the user slot's return into the source's return type.
func NewForwarder[T, R, T2, R2 any](
	src Source[T, R],
	in func(T) T2,
	out func(R2) R,
	opts ...ForwarderOption[T, R, T2, R2],
) *Forwarder[T, R, T2, R2] {
	f := &Forwarder[T, R, T2, R2]{
		src: func(cb Callback[T2, R2]) *Connection[T, R] {
			synthetic := NewCallback(func(a T) R {
				return out(cb.Call(in(a)))
			})
			return src.Connect(synthetic)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Connect installs cb as a user slot of signature R2(T2), synthesizing and
// installing the corresponding R(T)-signatured slot on the wrapped source.
func (f *Forwarder[T, R, T2, R2]) Connect(cb Callback[T2, R2]) *Connection[T, R] {
	return f.src(cb)
}

// ConnectFunc is sugar for Connect(NewCallback(fn)).
func (f *Forwarder[T, R, T2, R2]) ConnectFunc(fn func(T2) R2) *Connection[T, R] {
	return f.Connect(NewCallback(fn))
}
