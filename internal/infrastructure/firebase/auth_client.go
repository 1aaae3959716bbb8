package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
)

// FirebaseAuthClient wraps the Firebase Admin auth client for the health
// probe. Token verification on requests happens in the auth middleware;
// authentication itself lives outside this service.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	// Listing a single user is the cheapest call that exercises the
	// credentials end to end.
	iter := f.client.Users(ctx, "")
	_, err := iter.Next()
	if err != nil && err != iterator.Done {
		return err
	}

	return nil
}
