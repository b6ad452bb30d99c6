// Package watch emits module-level change events for a bucket.
//
// Raw filesystem notifications are noisy: editors write temp files,
// compilers truncate then write, directories appear before their contents.
// The watcher translates fsnotify events into bucket vocabulary — a module
// was added or removed, a source, binary, or sidecar changed — and
// debounces rapid bursts per module.
//
//	w, err := watch.New(b)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//	go w.Run(ctx)
//
//	for ev := range w.Events() {
//	    fmt.Println(ev.Module, ev.Op)
//	}
package watch
