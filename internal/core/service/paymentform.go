package service

import (
	"sync"
	"time"

	"github.com/revcart/storefront/internal/core/domain"
)

// safetyReleaseDelay frees a processing lock the owner never cleared, so an
// abandoned capture form cannot stay stuck.
const safetyReleaseDelay = 5 * time.Second

// captureForm is the shared state of a payment capture form: open flag,
// processing lock and the error line shown inside the form.
type captureForm struct {
	mu           sync.Mutex
	open         bool
	processing   bool
	errMsg       string
	releaseTimer *time.Timer
	releaseDelay time.Duration
	now          func() time.Time
}

func newCaptureForm() captureForm {
	return captureForm{
		releaseDelay: safetyReleaseDelay,
		now:          time.Now,
	}
}

func (f *captureForm) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.errMsg = ""
}

func (f *captureForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *captureForm) IsProcessing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

func (f *captureForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// tryBeginProcessing takes the processing lock and arms the safety release.
// It reports false when a capture already holds the lock, leaving that
// capture's state untouched.
func (f *captureForm) tryBeginProcessing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return false
	}
	f.processing = true
	f.errMsg = ""
	if f.releaseTimer != nil {
		f.releaseTimer.Stop()
	}
	f.releaseTimer = time.AfterFunc(f.releaseDelay, f.release)
	return true
}

func (f *captureForm) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
}

// finish clears the processing lock after the caller handled the submission.
func (f *captureForm) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
	if f.releaseTimer != nil {
		f.releaseTimer.Stop()
		f.releaseTimer = nil
	}
}

// fail clears the processing lock and shows a message, keeping the form open
// for a retry.
func (f *captureForm) fail(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
	f.errMsg = msg
	if f.releaseTimer != nil {
		f.releaseTimer.Stop()
		f.releaseTimer = nil
	}
}

// close dismisses the form. While processing it is a no-op and reports false.
func (f *captureForm) close() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return false
	}
	f.open = false
	f.errMsg = ""
	return true
}

// CardForm collects and validates card details before capture.
type CardForm struct {
	captureForm
	details domain.CardDetails
}

func NewCardForm() *CardForm {
	return &CardForm{captureForm: newCaptureForm()}
}

// Submit validates the fields. On success the form enters its processing
// state, blocking re-submission and dismissal until the caller finishes or
// fails the capture. While a capture holds the lock, Submit returns
// ErrCaptureInProgress and the capture's state stays untouched.
func (f *CardForm) Submit(d domain.CardDetails) (domain.FieldErrors, error) {
	if !f.tryBeginProcessing() {
		return nil, ErrCaptureInProgress
	}
	if errs := d.Validate(f.now()); !errs.OK() {
		f.finish()
		return errs, nil
	}

	f.mu.Lock()
	f.details = d
	f.mu.Unlock()
	return nil, nil
}

// Close dismisses the form unless a submission is processing. Dismissal
// resets the captured fields.
func (f *CardForm) Close() bool {
	if !f.close() {
		return false
	}
	f.mu.Lock()
	f.details = domain.CardDetails{}
	f.mu.Unlock()
	return true
}

// UPIForm collects and validates a UPI handle before capture.
type UPIForm struct {
	captureForm
	details domain.UPIDetails
}

func NewUPIForm() *UPIForm {
	return &UPIForm{captureForm: newCaptureForm()}
}

func (f *UPIForm) Submit(d domain.UPIDetails) (domain.FieldErrors, error) {
	if !f.tryBeginProcessing() {
		return nil, ErrCaptureInProgress
	}
	if errs := d.Validate(); !errs.OK() {
		f.finish()
		return errs, nil
	}

	f.mu.Lock()
	f.details = d
	f.mu.Unlock()
	return nil, nil
}

func (f *UPIForm) Close() bool {
	if !f.close() {
		return false
	}
	f.mu.Lock()
	f.details = domain.UPIDetails{}
	f.mu.Unlock()
	return true
}
