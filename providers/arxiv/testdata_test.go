package arxiv

import (
	"fmt"
	"strings"
)

const feedHeader = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title type="html">ArXiv Query: search_query=all</title>
  <id>http://arxiv.org/api/query</id>
`

func feed(entries ...string) string {
	return feedHeader + strings.Join(entries, "\n") + "\n</feed>\n"
}

func entry(id, title, summary string) string {
	return fmt.Sprintf(`  <entry>
    <id>http://arxiv.org/abs/%[1]s</id>
    <updated>2024-01-16T09:30:00Z</updated>
    <published>2024-01-15T18:59:59Z</published>
    <title>%[2]s</title>
    <summary>%[3]s</summary>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
    <link href="http://arxiv.org/abs/%[1]s" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/%[1]s" rel="related" type="application/pdf"/>
    <arxiv:primary_category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.AI" scheme="http://arxiv.org/schemas/atom"/>
  </entry>`, id, title, summary)
}
