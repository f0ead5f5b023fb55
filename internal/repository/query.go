package repository

// queryBuckets は加入者自身と所属グループのバケットを取得する。
// サービスにバケットが紐付かない場合、バケット列はNULLとなる。
const queryBuckets = `
SELECT
	s.service_id,
	b.rule,
	b.priority,
	b.initial_balance,
	b.current_balance,
	b.usage,
	s.expiry_date,
	s.service_start_date,
	s.plan_id,
	b.bucket_id,
	s.status,
	s.user_name AS bucket_user,
	b.consumption_limit,
	u.session_timeout,
	b.time_window,
	b.consumption_limit_window
FROM service_table s
JOIN user_table u
	ON s.user_name = u.username
	OR (u.group_id IS NOT NULL AND s.user_name = u.group_id)
LEFT JOIN bucket_table b
	ON s.service_id = b.service_id
WHERE u.username = $1
ORDER BY b.priority NULLS LAST, b.bucket_id`
