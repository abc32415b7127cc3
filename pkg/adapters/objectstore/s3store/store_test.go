package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/linkboard/pkg/logging"
)

type fakeS3 struct {
	objects     map[string][]byte
	types       map[string]string
	deleteErr   error
	lastDeleted string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(string(b))),
		ContentType:   aws.String(f.types[aws.ToString(in.Key)]),
		ContentLength: aws.Int64(int64(len(b))),
	}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.lastDeleted = aws.ToString(in.Key)
	delete(f.objects, f.lastDeleted)
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStore(client API) *Store {
	return New(client, Options{
		Bucket:    "board",
		PublicURL: "https://board.s3.us-east-1.amazonaws.com",
	}, logging.Discard())
}

func TestStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := newTestStore(fake)

	url, err := store.Put(ctx, "1700000000000_notes.pdf", strings.NewReader("pdf"), 3, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://board.s3.us-east-1.amazonaws.com/1700000000000_notes.pdf", url)

	obj, err := store.Get(ctx, "1700000000000_notes.pdf")
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(body))
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.Equal(t, int64(3), obj.ContentLength)

	require.NoError(t, store.Delete(ctx, "1700000000000_notes.pdf"))
	_, err = store.Get(ctx, "1700000000000_notes.pdf")
	assert.Error(t, err)
}

func TestStorePutDefaultsContentType(t *testing.T) {
	fake := newFakeS3()
	store := newTestStore(fake)

	_, err := store.Put(context.Background(), "k", strings.NewReader("x"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", fake.types["k"])
}

func TestStoreDeleteError(t *testing.T) {
	fake := newFakeS3()
	fake.deleteErr = errors.New("AccessDenied")
	store := newTestStore(fake)

	err := store.Delete(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestKeyFromURL(t *testing.T) {
	store := newTestStore(newFakeS3())

	tests := []struct {
		name   string
		url    string
		key    string
		wantOK bool
	}{
		{name: "plain", url: "https://board.s3.us-east-1.amazonaws.com/1_a.pdf", key: "1_a.pdf", wantOK: true},
		{name: "escaped", url: store.URLFor("1_my notes.pdf"), key: "1_my notes.pdf", wantOK: true},
		{name: "foreign host", url: "https://example.com/1_a.pdf", wantOK: false},
		{name: "bucket root", url: "https://board.s3.us-east-1.amazonaws.com/", wantOK: false},
		{name: "empty", url: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := store.KeyFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}
