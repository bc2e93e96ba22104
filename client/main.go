package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

func GetClient(addr string) *redis.Client {
	memo := redis.NewClient(&redis.Options{
		Addr:             addr,
		DisableIndentity: true,
	})

	err := memo.Ping(ctx).Err()
	if err != nil {
		fmt.Println("Could not connect to Memo server, make sure it is running")
		fmt.Println(err)
		os.Exit(1)
	}

	return memo
}

// Send a single command, e.g. `client rpush jobs a b c` or `client lrange jobs 0 -1`
func main() {
	addr := flag.String("addr", "localhost:5678", "Address of the memo server")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("usage: client [-addr host:port] <command> [args...]")
		os.Exit(2)
	}

	memo := GetClient(*addr)
	defer memo.Close()

	args := make([]any, flag.NArg())
	for i, a := range flag.Args() {
		args[i] = a
	}

	res, err := memo.Do(ctx, args...).Result()
	if err == redis.Nil {
		fmt.Println("<nil>")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	switch res := res.(type) {
	case []any:
		for i, v := range res {
			fmt.Printf("%d) %v\n", i+1, v)
		}
	default:
		fmt.Println(res)
	}
}
