package awsutil

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/kiteco/deepset/kite-golib/envutil"
)

// region used to discover bucket locations, the bucket's own region is used for writes
var localRegion = envutil.GetenvDefault("AWS_REGION", "us-west-1")

// IsS3URI returns true if the path is an s3 uri.
func IsS3URI(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ValidateURI checks whether the given uri points to S3.
func ValidateURI(uri string) (*url.URL, error) {
	s3url, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	if s3url.Scheme != "s3" {
		return nil, fmt.Errorf("url is not a s3 path: %s", s3url.String())
	}
	if s3url.Host == "" {
		return nil, fmt.Errorf("s3 url has no bucket: %s", s3url.String())
	}
	return s3url, nil
}

// JoinURI appends the given elements to an s3 prefix
//
//   JoinURI("s3://kite-data/deepset/", "models", "vocab.txt") == "s3://kite-data/deepset/models/vocab.txt"
func JoinURI(prefix string, elem ...string) (string, error) {
	s3url, err := ValidateURI(prefix)
	if err != nil {
		return "", err
	}
	s3url.Path = path.Join(append([]string{"/", s3url.Path}, elem...)...)
	return s3url.String(), nil
}

// S3PutObject writes the contents of the specified reader
// to the specified s3 URI.
func S3PutObject(r io.ReadSeeker, uri string) error {
	s3URL, err := ValidateURI(uri)
	if err != nil {
		return err
	}

	region, err := objectRegion(s3URL)
	if err != nil {
		return fmt.Errorf("unable to determine region: %s", err)
	}

	sess, err := session.NewSession()
	if err != nil {
		return err
	}

	s3client := s3.New(sess, aws.NewConfig().WithRegion(region))

	_, err = s3client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s3URL.Host),
		Key:    aws.String(objectKey(s3URL)),
		Body:   r,
	})

	return err
}

// UploadFile copies a local file to the given s3 URI
func UploadFile(localPath, uri string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Printf("uploading %s to %s", localPath, uri)
	if err := S3PutObject(f, uri); err != nil {
		return fmt.Errorf("error uploading %s to %s: %v", localPath, uri, err)
	}
	return nil
}

// --

func objectKey(uri *url.URL) string {
	return strings.TrimPrefix(uri.Path, "/")
}

func objectRegion(uri *url.URL) (string, error) {
	sess, err := session.NewSession()
	if err != nil {
		return "", err
	}

	s3client := s3.New(sess, aws.NewConfig().WithRegion(localRegion))

	// Discover the region that this bucket is located in
	bucketLocOutput, err := s3client.GetBucketLocation(&s3.GetBucketLocationInput{
		Bucket: aws.String(uri.Host),
	})
	if err != nil {
		return "", err
	}

	if bucketLocOutput.LocationConstraint == nil {
		return "us-east-1", nil
	}
	return *bucketLocOutput.LocationConstraint, nil
}
