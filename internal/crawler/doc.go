// Package crawler provides the page fetching and link extraction used by
// webcrawl demos.
//
// # Architecture
//
// The package is designed around the Spider type, which coordinates the
// crawl. It uses a work queue to manage URLs to visit and respects depth
// and page-count limits. All fetching is sequential: one URL at a time,
// one request at a time, a single attempt per URL. The tool exists to
// show what a naive crawler does when it meets a tarpit, so there is no
// retry, backoff, or concurrency to mask the effect.
//
// # Components
//
//   - Spider: Coordinates the crawl and performs HTTP fetches
//   - Parser: HTML parser extracting the title and hyperlinks
//   - ProbeLLMSTxt: Single-fetch check for an llms.txt resource
//
// Design decision: We implement our own fetching rather than using a
// crawling framework because:
//  1. The traversal must stay observable step by step for teaching
//  2. Frameworks add politeness and retry layers we explicitly do not want
//  3. The whole crawl fits in a few small, readable functions
//
// # Usage
//
//	spider := crawler.NewSpider(httpClient, crawler.WithMaxDepth(1))
//	pages, failures := spider.Crawl(ctx, "http://localhost:8893/")
package crawler
