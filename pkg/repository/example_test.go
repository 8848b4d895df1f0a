package repository_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/matzehuels/mvnresolve/pkg/repository"
	"github.com/matzehuels/mvnresolve/pkg/version"
)

func ExampleClient_LatestVersion() {
	mux := http.NewServeMux()
	mux.HandleFunc("/org/statendee/maven-utils/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<metadata><versioning><latest>0.4.5-SNAPSHOT</latest><release>0.4.4</release></versioning></metadata>`)
	})
	mux.HandleFunc("/org/statendee/maven-utils/0.4.5-SNAPSHOT/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<metadata><versioning><snapshot><timestamp>20211215.173200</timestamp><buildNumber>4</buildNumber></snapshot></versioning></metadata>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := repository.NewClient(repository.NewCoordinates(server.URL, "org.statendee", "maven-utils"))
	ctx := context.Background()

	release, _ := client.LatestReleaseVersion(ctx)
	latest, _ := client.LatestVersion(ctx)
	fmt.Println("release:", release)
	fmt.Println("latest:", latest)
	// Output:
	// release: 0.4.4
	// latest: 0.4.5-SNAPSHOT-20211215.173200-4
}

func ExampleClient_ArtifactURL() {
	client := repository.NewClient(repository.NewCoordinates("https://repo.example.com/maven2", "org.statendee", "maven-utils"))
	url, _ := client.ArtifactURL(version.New("0.4.5-SNAPSHOT-20211215.173200-4"), "jar-with-dependencies", "jar")
	fmt.Println(url)
	// Output: https://repo.example.com/maven2/org/statendee/maven-utils/0.4.5-SNAPSHOT/maven-utils-0.4.5-20211215.173200-4-jar-with-dependencies.jar
}
