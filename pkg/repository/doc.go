// Package repository resolves artifact versions against a Maven repository
// and downloads artifact files.
//
// # Layout
//
// A repository is a plain HTTP tree. For groupId "org.statendee" and
// artifactId "maven-utils" the client reads:
//
//	{repo}/org/statendee/maven-utils/maven-metadata.xml
//	{repo}/org/statendee/maven-utils/0.4.5-SNAPSHOT/maven-metadata.xml
//	{repo}/org/statendee/maven-utils/0.4.5-SNAPSHOT/maven-utils-0.4.5-20211215.173200-4.jar
//
// Dots in the groupId become path separators and underscores become
// hyphens.
//
// # Usage
//
//	coords, err := repository.ParseCoordinates(repository.DefaultRepository, "org.statendee:maven-utils")
//	if err != nil {
//	    return err
//	}
//	client := repository.NewClient(coords,
//	    repository.WithCredentials(repository.Credentials{Username: user, Token: token}),
//	)
//	v, err := client.LatestVersion(ctx)
//	if err != nil {
//	    return err
//	}
//	err = client.Download(ctx, v, "", "jar", "lib/maven-utils.jar")
//
// # Errors
//
// Operations return [errors.Error] values. Resolution failures carry
// METADATA_FETCH or MISSING_FIELD at the top and keep the underlying
// TRANSPORT, REMOTE_REJECTION or PARSE error in the chain, so both
// levels can be tested with [errors.Is]. HTTP statuses are available
// through [errors.StatusCode].
//
// [errors.Error]: github.com/matzehuels/mvnresolve/pkg/errors.Error
// [errors.Is]: github.com/matzehuels/mvnresolve/pkg/errors.Is
// [errors.StatusCode]: github.com/matzehuels/mvnresolve/pkg/errors.StatusCode
package repository
