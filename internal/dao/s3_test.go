package dao_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a1s/gridbind/internal/dao"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    int
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	raw, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "not found"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(raw))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	raw, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts++
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = raw
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3StoreNoBucket(t *testing.T) {
	_, err := dao.NewS3Store(newFakeS3(), "", "k")
	assert.ErrorIs(t, err, dao.ErrNoBucket)
}

func TestS3StoreMissingSnapshot(t *testing.T) {
	s, err := dao.NewS3Store(newFakeS3(), "b", "")
	require.NoError(t, err)

	ss, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ss)
}

func TestS3StoreRoundTrip(t *testing.T) {
	f := newFakeS3()
	s, err := dao.NewS3Store(f, "b", "grid.json")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSections()))
	ss, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSections(), ss)
	assert.Contains(t, f.objects, "b/grid.json")
}

func TestS3StoreDelete(t *testing.T) {
	f := newFakeS3()
	s, err := dao.NewS3Store(f, "b", "grid.json")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testSections()))

	require.NoError(t, s.Delete(ctx, "v1"))
	ss, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ss[1].Rows)
	assert.Equal(t, 2, f.puts)
}

func TestS3StoreLoadFailure(t *testing.T) {
	f := newFakeS3()
	f.getErr = &smithy.GenericAPIError{Code: "AccessDenied"}
	s, err := dao.NewS3Store(f, "b", "grid.json")
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestS3StoreBadSnapshot(t *testing.T) {
	f := newFakeS3()
	f.objects["b/grid.json"] = []byte(`{"version": 42}`)
	s, err := dao.NewS3Store(f, "b", "grid.json")
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, dao.ErrBadSnapshot)
}

func TestS3StoreEmptySectionsSurvive(t *testing.T) {
	f := newFakeS3()
	s, err := dao.NewS3Store(f, "b", "grid.json")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, model1.Sections{{Name: "a", Rows: model1.Rows{}}}))
	ss, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 1)
	assert.Equal(t, "a", ss[0].Name)
}
