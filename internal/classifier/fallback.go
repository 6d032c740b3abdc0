package classifier

import "errors"

// FallbackSummary is the summary recorded when no classification could be obtained.
const FallbackSummary = "classification unavailable"

// Fallback is the sentinel classification substituted on any classifier failure.
var Fallback = Result{
	Category: CategoryNotApplicable,
	Urgency:  UrgencyNotApplicable,
	Summary:  FallbackSummary,
}

// Resolve returns result unchanged when err is nil and Fallback otherwise.
// It never fails. The raw model output of an invalid response is carried
// over so it can still be archived.
func Resolve(result Result, err error) Result {
	if err == nil {
		return result
	}

	fb := Fallback
	var ce *Error
	if errors.As(err, &ce) {
		fb.Raw = ce.Raw
	}
	return fb
}
