// Package adquery provides a thin client for querying LDAP directory
// servers, including Active Directory: session management, a typed
// search-filter builder, whole-subtree search with structured results, and a
// codec for Windows security identifiers (SIDs).
//
// # Connecting and searching
//
//	client, _ := adquery.New(
//	    adquery.WithServer("dc1.example.com", 636),
//	    adquery.WithTLS(),
//	    adquery.WithBindCredentials("CN=svc,OU=Accounts,DC=example,DC=com", "secret"),
//	    adquery.WithBaseDN("DC=example,DC=com"),
//	)
//	defer client.Close()
//
//	entries, _ := client.Search(ctx, adquery.SearchRequest{
//	    Filter: adquery.And(
//	        adquery.Equality("objectClass", "user"),
//	        adquery.Substring("cn", adquery.Any("smith")),
//	    ),
//	})
//
// # SID conversion
//
//	text, _ := adquery.SIDToString(entry.RawValues("objectSid")[0])
//	// "S-1-5-21-3623811015-3361044348-30300820-1013"
//
// The wire protocol itself (handshake, TLS, message encoding) is handled by
// go-ldap; this package only builds filters, orchestrates searches, and maps
// results.
package adquery
