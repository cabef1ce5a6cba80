// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"io"
	"io/fs"
	"strings"
	"time"
)

type S3Filesystem struct {
	svc          *s3.S3
	staticBucket string
}

// NewS3Filesystem serves files from a bucket in region.
func NewS3Filesystem(region, bucket string) (*S3Filesystem, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &S3Filesystem{svc: s3.New(sess), staticBucket: bucket}, nil
}

var s3ContentTypes = map[string]string{
	".json": "application/json",
	".tmx":  "application/xml",
	".toml": "application/toml",
}

func (s3Filesystem *S3Filesystem) Open(filename string) (fs.File, error) {
	if !fs.ValidPath(filename) {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: fs.ErrInvalid}
	}
	data, modTime, err := s3Filesystem.get(filename)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: err}
	}
	return newMemoryFile(filename, data, modTime), nil
}

func (s3Filesystem *S3Filesystem) ReadStaticFile(filename string) ([]byte, error) {
	data, _, err := s3Filesystem.get(filename)
	if err != nil {
		return nil, fmt.Errorf("read static file %s: %w", filename, err)
	}
	return data, nil
}

func (s3Filesystem *S3Filesystem) get(filename string) ([]byte, time.Time, error) {
	output, err := s3Filesystem.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s3Filesystem.staticBucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == s3.ErrCodeNoSuchKey {
			return nil, time.Time{}, fs.ErrNotExist
		}
		return nil, time.Time{}, err
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, aws.TimeValue(output.LastModified), nil
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	readSeeker := bytes.NewReader(data)

	// Patch S3's limited vocabulary of default content types
	var contentType *string
	for ext, mime := range s3ContentTypes {
		if strings.HasSuffix(filename, ext) {
			contentType = aws.String(mime)
			break
		}
	}

	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.staticBucket),
		Key:          aws.String(filename),
		Body:         readSeeker,
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	err := req.Send()
	return err
}
