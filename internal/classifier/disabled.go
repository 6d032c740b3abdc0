package classifier

import "context"

type disabled struct {
	reason error
}

// Disabled returns a Classifier that fails every call with a configuration
// error without network access.
func Disabled(reason error) Classifier {
	return &disabled{reason: reason}
}

func (d *disabled) Name() string {
	return ProviderNone
}

func (d *disabled) Classify(context.Context, string) (Result, error) {
	return Result{}, newError(KindConfiguration, d.reason)
}
