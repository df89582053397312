// Package kafka publishes JSON events to Apache Kafka.
//
// The producer writes synchronously to one topic and hashes message keys onto
// partitions, so events sharing a key keep their order:
//
//	producer, err := kafka.NewProducer(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "tagsearch.documents",
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer producer.Close()
//
//	err = producer.PublishJSON(ctx, "42", event)
//
// TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) are configured through
// Config.TLS and Config.SASL. When a tracer is attached with WithCarrier, the
// W3C trace context travels in the message headers.
package kafka
