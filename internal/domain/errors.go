package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeEmbedding        = "EMBEDDING_ERROR"
	ErrCodeStoreWrite       = "STORE_WRITE_ERROR"
	ErrCodeStoreQuery       = "STORE_QUERY_ERROR"
	ErrCodeInsufficientText = "INSUFFICIENT_TEXT"
	ErrCodeSourceFetch      = "SOURCE_FETCH_ERROR"
	ErrCodeExtraction       = "EXTRACTION_ERROR"
)

// Validation errors
var (
	ErrEmptyText = NewDomainError(ErrCodeValidation, "text cannot be empty")
)

// Ingestion errors
var (
	// ErrInsufficientExtractedText marks a source whose extraction yielded too
	// little text to index, which usually means a scanned or non-digitized
	// document. It is recovered as a per-source skip, never a batch failure.
	ErrInsufficientExtractedText = NewDomainError(ErrCodeInsufficientText, "extracted text below minimum length")
)

// NewEmbeddingError wraps a failure from the embedding provider. Embedding
// failures are never substituted with a zero vector: a corrupted embedding
// silently degrades all downstream ranking.
func NewEmbeddingError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeEmbedding, message, err)
}

// NewStoreWriteError wraps a rejected chunk insert.
func NewStoreWriteError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStoreWrite, "vector store rejected insert", err)
}

// NewStoreQueryError wraps a failed vector store query.
func NewStoreQueryError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStoreQuery, "vector store query failed", err)
}
