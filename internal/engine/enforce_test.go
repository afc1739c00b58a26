package engine

import (
	"errors"
	"testing"
)

func drain(src TokenSource) error {
	_, err := DecodeAny(src, nil)
	return err
}

func TestEnforce_DuplicateKeyError(t *testing.T) {
	src := toks(KindBeginArray, KindBeginObject, KindKey, "a", KindNumber, "1", KindKey, "a", KindNumber, "2", KindEndObject, KindEndArray)
	err := drain(WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupError}))
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/0/a" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestEnforce_DuplicateKeyWarnContinues(t *testing.T) {
	var got []SimpleIssue
	src := toks(KindBeginObject, KindKey, "a~b", KindNumber, "1", KindKey, "a~b", KindNumber, "2", KindEndObject)
	err := drain(WrapWithEnforcement(src, EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	}))
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/a~0b" {
		t.Fatalf("unexpected issues: %+v", got)
	}
}

func TestEnforce_DuplicateKeyIgnore(t *testing.T) {
	src := toks(KindBeginObject, KindKey, "a", KindNull, KindKey, "a", KindNull, KindEndObject)
	if err := drain(WrapWithEnforcement(src, EnforceOptions{})); err != nil {
		t.Fatalf("ignore mode must not fail: %v", err)
	}
}

func TestEnforce_SameKeyInSiblingObjects(t *testing.T) {
	src := toks(
		KindBeginArray,
		KindBeginObject, KindKey, "a", KindNull, KindEndObject,
		KindBeginObject, KindKey, "a", KindNull, KindEndObject,
		KindEndArray,
	)
	if err := drain(WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupError})); err != nil {
		t.Fatalf("keys are scoped per object: %v", err)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	src := toks(
		KindBeginObject, KindKey, "a",
		KindBeginObject, KindKey, "b",
		KindBeginObject, KindKey, "c", KindNumber, "1", KindEndObject,
		KindEndObject, KindEndObject,
	)
	err := drain(WrapWithEnforcement(src, EnforceOptions{MaxDepth: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/a/b" || ie.Code != "parse_error" {
		t.Fatalf("expected depth issue at /a/b, got %v", err)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	src := toks(KindBeginArray, KindNull, KindNull, KindNull, KindEndArray)
	err := drain(WrapWithEnforcement(src, EnforceOptions{MaxBytes: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("expected truncated issue, got %v", err)
	}
}
