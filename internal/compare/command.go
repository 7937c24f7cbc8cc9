package compare

// Callback is an external comparator. The result must be the textual form
// of a signed integer.
type Callback interface {
	Invoke(args [2]string) (string, error)
}

// CallbackFunc adapts a function to Callback
type CallbackFunc func(args [2]string) (string, error)

// Invoke implements Callback
func (f CallbackFunc) Invoke(args [2]string) (string, error) {
	return f(args)
}

// CommandComparer delegates ordering to a Callback. Each call may take
// arbitrarily long; callers wanting a deadline wrap the Callback.
type CommandComparer struct {
	base
	callback Callback
}

// NewCommand creates a new command comparer
func NewCommand(cfg Config, callback Callback) *CommandComparer {
	return &CommandComparer{
		base:     newBase(cfg),
		callback: callback,
	}
}

func (c *CommandComparer) invoke(left, right string) (int, string, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, "", err
	}

	out, err := c.callback.Invoke([2]string{l, r})
	if err != nil {
		return 0, "", NewCallbackError(l, r, err)
	}
	v, err := parseIntLiteral(out)
	if err != nil {
		return 0, "", NewCallbackError(l, r, ErrNonIntegerResult)
	}
	return sign(v), l, nil
}

// Compare implements Comparer
func (c *CommandComparer) Compare(left, right string) (int, error) {
	result, l, err := c.invoke(left, right)
	if err != nil {
		return 0, err
	}
	c.track(l, result)
	return c.direct(result), nil
}

// Equal implements Equaler
func (c *CommandComparer) Equal(left, right string) (bool, error) {
	result, _, err := c.invoke(left, right)
	if err != nil {
		return false, err
	}
	return result == 0, nil
}

// Hash implements Equaler. The callback defines no hash, so every value
// hashes alike.
func (c *CommandComparer) Hash(value string) (uint64, error) {
	return 0, nil
}
